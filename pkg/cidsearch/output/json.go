// Package output renders search results as JSON or as text cards.
package output

import (
	"encoding/json"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

// resultJSON is the wire shape of a SearchResult.
type resultJSON struct {
	Workbook        string              `json:"workbook"`
	SourceName      string              `json:"source_name"`
	MatchedRowIndex int                 `json:"matched_row_index"`
	ElapsedMillis   int64               `json:"elapsed_ms"`
	Fields          []models.FieldValue `json:"fields"`
}

func toResultJSON(r models.SearchResult) resultJSON {
	fields := r.Fields
	if fields == nil {
		fields = []models.FieldValue{}
	}
	return resultJSON{
		Workbook:        r.Workbook,
		SourceName:      r.SourceName,
		MatchedRowIndex: r.MatchedRowIndex,
		ElapsedMillis:   r.ElapsedMillis(),
		Fields:          fields,
	}
}

// ToJSON serializes a single result.
func ToJSON(r models.SearchResult, pretty bool) ([]byte, error) {
	return marshal(toResultJSON(r), pretty)
}

// ResultsToJSON serializes a list of results as a JSON array.
func ResultsToJSON(results []models.SearchResult, pretty bool) ([]byte, error) {
	out := make([]resultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, toResultJSON(r))
	}
	return marshal(out, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
