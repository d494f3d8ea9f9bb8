// Package token classifies raw token strings produced by the tokenizer.
//
// All predicates are pure functions over the token text.  Several token
// shapes overlap lexically — an "e" run can be an era date token or the
// start of an exponent marker, and "General" starts with the era letter
// "G" — so the predicates here encode the exact tie-breaks the section
// parser relies on.
package token

import "strings"

// IsExponent reports whether tok is an exponent marker ("e+" or "e-",
// case-insensitive).
func IsExponent(tok string) bool {
	return strings.EqualFold(tok, "e+") || strings.EqualFold(tok, "e-")
}

// IsGeneral reports whether tok is the keyword "General" (case-insensitive).
func IsGeneral(tok string) bool {
	return strings.EqualFold(tok, "General")
}

// IsPlaceholder reports whether tok is one of the canonical placeholder
// tokens: the digit placeholders "0", "#", "?" and the text placeholder "@".
func IsPlaceholder(tok string) bool {
	return tok == "0" || tok == "#" || tok == "?" || tok == "@"
}

// IsLiteral reports whether tok renders as literal text: quoted strings,
// backslash escapes, fill (*) and skip-width (_) escapes, and the
// single-character symbol tokens that have no formatting meaning of their
// own.
func IsLiteral(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok[0] {
	case '_', '\\', '"', '*':
		return true
	}
	switch tok {
	case ",", "!", "&", "%", "+", "-", "$", "€", "£",
		"{", "}", "(", ")", " ":
		return true
	}
	return IsDigit19(tok)
}

// IsNumberLiteral reports whether tok may appear inside a plain number
// layout: placeholders, literal tokens, and the decimal point.
func IsNumberLiteral(tok string) bool {
	return IsPlaceholder(tok) || IsLiteral(tok) || tok == "."
}

// IsDatePart reports whether tok is a date/time token: letter runs of
// y/m/d/s/h in either case, era runs of g or e (excluding the "General"
// keyword and the exponent markers, which share their first letter), the
// AM/PM literals, and the bracketed elapsed-time tokens.
//
// Bracketed elapsed tokens must be recognised here, before generic bracket
// handling: they are lexically [...] tokens but semantically date tokens.
func IsDatePart(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok[0] {
	case 'y', 'Y', 'm', 'M', 'd', 'D', 's', 'S', 'h', 'H':
		return true
	case 'g', 'G':
		return !IsGeneral(tok)
	case 'e', 'E':
		return !IsExponent(tok)
	}
	if strings.EqualFold(tok, "am/pm") || strings.EqualFold(tok, "a/p") {
		return true
	}
	return IsDurationPart(tok)
}

// IsDurationPart reports whether tok is a bracketed elapsed-time token such
// as [h], [hh], [mm] or [ss]: a [ ] wrapper around a run of a single
// hour/minute/second letter.  Unit-only by definition — era and calendar
// tokens never appear bracketed.
func IsDurationPart(tok string) bool {
	if len(tok) < 3 || tok[0] != '[' || tok[len(tok)-1] != ']' {
		return false
	}
	inner := tok[1 : len(tok)-1]
	var unit byte
	switch inner[0] {
	case 'h', 'H':
		unit = 'h'
	case 'm', 'M':
		unit = 'm'
	case 's', 'S':
		unit = 's'
	default:
		return false
	}
	for i := 0; i < len(inner); i++ {
		if lower(inner[i]) != unit {
			return false
		}
	}
	return true
}

// IsDigit19 reports whether tok is a single digit 1–9.
func IsDigit19(tok string) bool {
	return len(tok) == 1 && tok[0] >= '1' && tok[0] <= '9'
}

// IsDigit09 reports whether tok is a single digit 0–9.
func IsDigit09(tok string) bool {
	return tok == "0" || IsDigit19(tok)
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
