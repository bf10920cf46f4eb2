package parser

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cidreporter/cidsearch-go/pkg/cidsearch/models"
)

func TestFormatCell(t *testing.T) {
	date := time.Date(2023, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    models.CellValue
		expected string
	}{
		{"empty", models.CellValue{}, ""},
		{"integer", models.Numeric(7700000), "7700000"},
		{"large phone", models.Numeric(967770000000), "967770000000"},
		{"fraction truncated", models.Numeric(12.99), "12"},
		{"negative truncated toward zero", models.Numeric(-3.7), "-3"},
		{"tiny", models.Numeric(1e-9), "0"},
		{"date", models.Date(date), "Wed Mar 15 10:30:00 UTC 2023"},
		{"single digit day zero padded", models.Date(time.Date(2023, time.March, 5, 8, 4, 9, 0, time.UTC)), "Sun Mar 05 08:04:09 UTC 2023"},
		{"text", models.Text("صنعاء"), "صنعاء"},
		{"text kept untrimmed", models.Text("  a "), "  a "},
		{"true", models.Boolean(true), "true"},
		{"false", models.Boolean(false), "false"},
		{"formula", models.Formula("SUM(A1:A3)"), "SUM(A1:A3)"},
		{"raw", models.Raw("#DIV/0!"), "#DIV/0!"},
		{"unknown kind", models.CellValue{Kind: models.CellKind(99), Raw: "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatCell(tt.input, FormatOptions{})
			if result != tt.expected {
				t.Errorf("FormatCell(%+v) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatCellDateLayout(t *testing.T) {
	date := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	result := FormatCell(models.Date(date), FormatOptions{DateLayout: "2006-01-02"})
	if result != "2024-01-02" {
		t.Errorf("FormatCell with layout = %q, expected %q", result, "2024-01-02")
	}
}

func TestFormatCellNumbersHaveNoExponentOrPoint(t *testing.T) {
	values := []float64{1, 10, 1e6, 1e15, 123456789012, 7.7e9, 99999999999.5, -1e12, 1e20}

	for _, v := range values {
		result := FormatCell(models.Numeric(v), FormatOptions{})
		if strings.ContainsAny(result, "eE.") {
			t.Errorf("FormatCell(%v) = %q, contains exponent or decimal point", v, result)
		}
	}
}

func TestFormatCellNonFinite(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		result := FormatCell(models.Numeric(tt.input), FormatOptions{})
		if result != tt.expected {
			t.Errorf("FormatCell(%v) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatCellIsIdempotent(t *testing.T) {
	inputs := []models.CellValue{
		models.Numeric(42.5),
		models.Text("رقم الهاتف"),
		models.Boolean(true),
		models.Formula("A1*2"),
		models.Date(time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)),
	}

	for _, in := range inputs {
		once := FormatCell(in, FormatOptions{})
		twice := FormatCell(models.Text(once), FormatOptions{})
		if once != twice {
			t.Errorf("formatting %q again gave %q", once, twice)
		}
	}
}
