package parser

import "strings"

// IsBuiltinDateFormat reports whether a built-in number format id renders
// dates or times. Ids 27-36 and 50-58 are the CJK locale date formats.
func IsBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// IsDateFormat reports whether a cell with the given number format id and
// format code holds a date. The code is only consulted for custom formats.
// Used for .xlsx styles; .xls workbooks defer to xlrd's own heuristic.
func IsDateFormat(id int, code string) bool {
	if IsBuiltinDateFormat(id) {
		return true
	}
	return IsDateFormatCode(code)
}

// IsDateFormatCode reports whether a custom number format code contains date
// or time tokens outside quoted literals, escapes and bracketed sections.
func IsDateFormatCode(code string) bool {
	if code == "" || strings.EqualFold(code, "general") {
		return false
	}
	// Only the positive section decides.
	inQuote := false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case ch == '"':
			inQuote = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			inner := strings.ToLower(code[i+1 : i+end])
			// [h], [mm], [ss] are elapsed time markers.
			if inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i += end
		case ch == ';':
			return false
		default:
			switch ch | 0x20 {
			case 'y', 'm', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}
