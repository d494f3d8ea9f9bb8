// Package dateformat provides shared date-format detection helpers used by
// the root package and the renderer.
//
// It exists solely to eliminate duplicated code; it has no public-API
// contract of its own.  All callers are within the same module.
package dateformat

// IsBuiltInDateID reports whether id is a built-in numFmtId that represents
// a date, datetime, time or elapsed-time format.
//
// The recognised IDs follow ECMA-376 §18.8.30:
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func IsBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// ScanFormatStr scans the unquoted portion of a custom format string for
// date/time token characters and returns true if any are found.  It is a
// cheap pre-check that agrees with the full parser on every well-formed
// format string without building a section list.
//
// The following characters are treated as date/time tokens when they appear
// outside double-quoted literals and outside square-bracket expressions:
//
//   - d, D — day
//   - m, M — month
//   - y, Y — year
//   - h, H — hour
//   - s, S — second
//   - e, E — era (only when NOT preceded by a digit placeholder
//     0, #, ?, or '.', which would make it an exponent marker)
//
// The General keyword is skipped as a whole so its 'e' characters never
// count as era tokens.
func ScanFormatStr(formatStr string) bool {
	inDoubleQuote := false
	inBracket := false
	var prev byte
	for i := 0; i < len(formatStr); i++ {
		ch := formatStr[i]
		switch {
		case inDoubleQuote:
			if ch == '"' {
				inDoubleQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inDoubleQuote = true
		case ch == '[':
			inBracket = true
		case (ch == 'g' || ch == 'G') && hasGeneralAt(formatStr, i):
			i += len("General") - 1
			prev = 'l'
			continue
		case ch == 'd' || ch == 'D' ||
			ch == 'm' || ch == 'M' ||
			ch == 'y' || ch == 'Y' ||
			ch == 'h' || ch == 'H' ||
			ch == 's' || ch == 'S':
			return true
		case ch == 'e' || ch == 'E':
			if prev != '0' && prev != '#' && prev != '?' && prev != '.' {
				return true
			}
		}
		if !inDoubleQuote && !inBracket {
			prev = ch
		}
	}
	return false
}

// hasGeneralAt reports whether the General keyword starts at byte i,
// compared case-insensitively.
func hasGeneralAt(s string, i int) bool {
	const keyword = "general"
	if len(s)-i < len(keyword) {
		return false
	}
	for j := 0; j < len(keyword); j++ {
		ch := s[i+j]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		if ch != keyword[j] {
			return false
		}
	}
	return true
}
