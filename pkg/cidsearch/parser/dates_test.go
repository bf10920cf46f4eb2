package parser

import "testing"

func TestIsBuiltinDateFormat(t *testing.T) {
	tests := []struct {
		id       int
		expected bool
	}{
		{0, false},
		{1, false},
		{13, false},
		{14, true},
		{22, true},
		{23, false},
		{27, true},
		{36, true},
		{45, true},
		{47, true},
		{49, false},
		{50, true},
		{58, true},
		{164, false},
	}

	for _, tt := range tests {
		if result := IsBuiltinDateFormat(tt.id); result != tt.expected {
			t.Errorf("IsBuiltinDateFormat(%d) = %v, expected %v", tt.id, result, tt.expected)
		}
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"", false},
		{"General", false},
		{"0", false},
		{"#,##0.00", false},
		{"0.00%", false},
		{"yyyy-mm-dd", true},
		{"dd/mm/yyyy hh:mm", true},
		{"[h]:mm:ss", true},
		{"[$-409]mmmm d, yyyy", true},
		{"[Red]0.00", false},
		{`0 "days"`, false},
		{`\d0`, false},
		{"@", false},
		{"0;[Red]-0;yyyy", false},
	}

	for _, tt := range tests {
		if result := IsDateFormatCode(tt.code); result != tt.expected {
			t.Errorf("IsDateFormatCode(%q) = %v, expected %v", tt.code, result, tt.expected)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	if !IsDateFormat(14, "") {
		t.Error("built-in id 14 should be a date format")
	}
	if !IsDateFormat(170, "yyyy/mm/dd") {
		t.Error("custom date code should be a date format")
	}
	if IsDateFormat(170, "0.000") {
		t.Error("custom numeric code should not be a date format")
	}
}
