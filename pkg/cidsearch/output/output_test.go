package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() models.SearchResult {
	return models.SearchResult{
		Workbook:        "cid.xlsx",
		SourceName:      "المشتركين",
		MatchedRowIndex: 2,
		Elapsed:         1500 * time.Microsecond,
		Fields: []models.FieldValue{
			{Label: "الاسم", Value: "محمد"},
			{Label: "رقم الهاتف", Value: "777123456"},
			{Label: "", Value: "extra"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResult(), false)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "cid.xlsx", got["workbook"])
	assert.Equal(t, "المشتركين", got["source_name"])
	assert.Equal(t, float64(2), got["matched_row_index"])
	assert.Equal(t, float64(1), got["elapsed_ms"])

	fields, ok := got["fields"].([]interface{})
	require.True(t, ok)
	require.Len(t, fields, 3)
	assert.Equal(t, map[string]interface{}{"label": "", "value": "extra"}, fields[2])
	assert.NotContains(t, string(data), "\n")
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(sampleResult(), true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"workbook\": \"cid.xlsx\"")
}

func TestResultsToJSON(t *testing.T) {
	data, err := ResultsToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = ResultsToJSON([]models.SearchResult{{SourceName: "a"}, sampleResult()}, false)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, []interface{}{}, got[0]["fields"])
	assert.Equal(t, "المشتركين", got[1]["source_name"])
}

func TestWriteCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCard(&buf, sampleResult()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"نتيجة البحث",
		"المستند: cid.xlsx / المشتركين",
		"رقم الصف: 2",
		"زمن البحث: 1 ms",
		strings.Repeat("-", 32),
		"الاسم: محمد",
		"رقم الهاتف: 777123456",
		": extra",
	}
	assert.Equal(t, want, lines)
}

func TestWriteCardWithoutWorkbook(t *testing.T) {
	r := sampleResult()
	r.Workbook = ""

	var buf bytes.Buffer
	require.NoError(t, WriteCard(&buf, r))
	assert.Contains(t, buf.String(), "المستند: المشتركين\n")
}
