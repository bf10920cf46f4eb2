package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

// NoResults is printed when a search completes without a match.
const NoResults = "no results found"

// Card labels.
const (
	cardTitle    = "نتيجة البحث"
	cardDocument = "المستند"
	cardRow      = "رقم الصف"
	cardElapsed  = "زمن البحث"
)

// WriteCard writes r as a text card: source, row number and scan time,
// followed by one "label: value" line per field.
func WriteCard(w io.Writer, r models.SearchResult) error {
	var b strings.Builder

	source := r.SourceName
	if r.Workbook != "" {
		source = r.Workbook + " / " + r.SourceName
	}

	fmt.Fprintln(&b, cardTitle)
	fmt.Fprintf(&b, "%s: %s\n", cardDocument, source)
	fmt.Fprintf(&b, "%s: %d\n", cardRow, r.MatchedRowIndex)
	fmt.Fprintf(&b, "%s: %d ms\n", cardElapsed, r.ElapsedMillis())
	b.WriteString(strings.Repeat("-", 32))
	b.WriteByte('\n')
	for _, f := range r.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
