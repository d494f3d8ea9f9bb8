// Package render formats concrete values using a parsed number format.
//
// The public entry point is [FormatValue], which resolves a numFmtId plus
// optional custom format string via [numfmt.ResolveFormat] and renders the
// value with the section selected by its conditions or its sign.  [Format]
// renders against an already-parsed [numfmt.FormatSpec].
//
// All format-string parsing is delegated to [numfmt.Parse]; this package
// only implements the rendering logic on top of the resulting section list.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-numfmt"
	"github.com/TsubasaBE/go-numfmt/section"
	"github.com/TsubasaBE/go-numfmt/token"
)

// FormatValue renders a raw cell value v using the given number format.
//
//   - numFmtID selects a built-in format (0 = General).
//   - fmtStr is a custom format string; pass "" for built-in IDs that have
//     no custom override.
//   - date1904 selects the 1904 date system for date serials.
//
// The dynamic type of v must be one of: nil, string, bool, float64.
// Any other type falls back to [fmt.Sprint].
func FormatValue(v any, numFmtID int, fmtStr string, date1904 bool) string {
	effective := numfmt.ResolveFormat(numFmtID, fmtStr)

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return formatString(val, effective)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatFloat(val, effective, date1904)
	default:
		return fmt.Sprint(v)
	}
}

// Format renders v using an already-parsed spec.  Semantics match
// [FormatValue]; parse once with [numfmt.Parse] when formatting many values
// with the same format string.
func Format(v any, spec *numfmt.FormatSpec, date1904 bool) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if sec := textSection(spec.Sections); sec != nil {
			return renderTokens(sec.Tokens, val)
		}
		return val
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatFloatSpec(val, spec, date1904)
	default:
		return fmt.Sprint(v)
	}
}

// ── dispatch ──────────────────────────────────────────────────────────────────

func formatString(val, effective string) string {
	if effective == "General" {
		return val
	}
	spec := numfmt.Parse(effective)
	if sec := textSection(spec.Sections); sec != nil {
		return renderTokens(sec.Tokens, val)
	}
	// Text format (@) absent — return as-is.
	return val
}

// textSection returns the section governing text values: the fourth
// section by positional convention, or a lone Text section.
func textSection(secs []*section.Section) *section.Section {
	if len(secs) >= 4 && secs[3].Type == section.Text {
		return secs[3]
	}
	if len(secs) == 1 && secs[0].Type == section.Text {
		return secs[0]
	}
	return nil
}

func formatFloat(val float64, effective string, date1904 bool) string {
	if effective == "General" {
		return renderGeneral(val)
	}
	return formatFloatSpec(val, numfmt.Parse(effective), date1904)
}

func formatFloatSpec(val float64, spec *numfmt.FormatSpec, date1904 bool) string {
	secs := spec.Sections
	if len(secs) == 0 {
		return renderGeneral(val)
	}
	sec := selectSection(secs, val)

	switch sec.Type {
	case section.General:
		return renderGeneral(val)
	case section.Date, section.Duration:
		return renderDateTime(val, sec, date1904)
	case section.Text:
		return renderTokens(sec.Tokens, renderGeneral(val))
	case section.Number:
		return renderDecimal(val, sec, len(secs))
	case section.Exponential:
		return renderExponential(val, sec, len(secs))
	case section.Fraction:
		return renderFraction(val, sec, len(secs))
	}
	return renderGeneral(val)
}

// selectSection picks the section that applies to val.
//
// Condition-bearing sections win when their condition matches, in source
// order.  Otherwise the positional convention applies:
//
//	1 section  → applies to all values
//	2 sections → [0]=positive+zero  [1]=negative
//	3 sections → [0]=positive  [1]=negative  [2]=zero
//	4 sections → [0]=positive  [1]=negative  [2]=zero  [3]=text
//
// When the positional pick carries a condition that did not match, the
// first unconditional section takes its place.
func selectSection(secs []*section.Section, val float64) *section.Section {
	for _, s := range secs {
		if s.Condition != nil && s.Condition.Evaluate(val) {
			return s
		}
	}

	var pick *section.Section
	switch {
	case len(secs) == 1:
		pick = secs[0]
	case len(secs) == 2:
		if val < 0 {
			pick = secs[1]
		} else {
			pick = secs[0]
		}
	default: // 3 or 4
		switch {
		case val > 0:
			pick = secs[0]
		case val < 0:
			pick = secs[1]
		default:
			pick = secs[2]
		}
	}
	if pick.Condition != nil {
		for _, s := range secs {
			if s.Condition == nil {
				return s
			}
		}
	}
	return pick
}

// ── General rendering ─────────────────────────────────────────────────────────

// renderGeneral formats a float64 in "General" style: integer values are
// rendered without a decimal point, fractional values use Go's shortest
// float representation.
func renderGeneral(val float64) string {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return strconv.FormatFloat(val, 'G', -1, 64)
	}
	if val == math.Trunc(val) && math.Abs(val) < 1e15 {
		return strconv.FormatInt(int64(val), 10)
	}
	return strconv.FormatFloat(val, 'G', -1, 64)
}

// ── literal and token helpers ─────────────────────────────────────────────────

// literalText returns the display text of a literal token: quoted strings
// lose their quotes, backslash escapes their marker, a skip-width token
// renders as a space and a fill token renders as nothing (fill repetition
// has no meaning outside a fixed-width cell).  Any other token renders
// verbatim.
func literalText(tok string) string {
	if tok == "" {
		return ""
	}
	switch tok[0] {
	case '"':
		if len(tok) >= 2 && tok[len(tok)-1] == '"' {
			return tok[1 : len(tok)-1]
		}
		return tok[1:]
	case '\\':
		return tok[1:]
	case '_':
		return " "
	case '*':
		return ""
	}
	return tok
}

// renderTokens walks a General/Text token list, substituting textValue for
// each @ placeholder.
func renderTokens(toks []string, textValue string) string {
	var sb strings.Builder
	for _, tok := range toks {
		switch {
		case tok == "@":
			sb.WriteString(textValue)
		case token.IsGeneral(tok):
			sb.WriteString(textValue)
		case token.IsLiteral(tok):
			sb.WriteString(literalText(tok))
		default:
			sb.WriteString(tok)
		}
	}
	return sb.String()
}

// hasExplicitSign reports whether any token of the groups is a bare + or -
// literal; such sections display the sign themselves.
func hasExplicitSign(groups ...[]string) bool {
	for _, toks := range groups {
		for _, tok := range toks {
			if tok == "+" || tok == "-" {
				return true
			}
		}
	}
	return false
}

// needsMinus reports whether a minus sign must be prepended: only when the
// value is negative, the format has a single section (so the section does
// not encode the sign visually), and the section has no explicit sign
// literal of its own.
func needsMinus(val float64, sectionCount int, groups ...[]string) bool {
	return val < 0 && sectionCount < 2 && !hasExplicitSign(groups...)
}

// countPlaceholders returns the number of digit placeholder tokens and the
// number of zero placeholders among them.
func countPlaceholders(toks []string) (placeholders, zeros int) {
	for _, tok := range toks {
		switch tok {
		case "0":
			placeholders++
			zeros++
		case "#", "?":
			placeholders++
		}
	}
	return placeholders, zeros
}

// writeDigitGroup walks one placeholder group, emitting digits at the first
// placeholder and literals in place.  Comma tokens are skipped: grouping is
// already applied to digits.
func writeDigitGroup(sb *strings.Builder, toks []string, digits string) {
	emitted := false
	for _, tok := range toks {
		switch {
		case tok == "0" || tok == "#" || tok == "?":
			if !emitted {
				sb.WriteString(digits)
				emitted = true
			}
		case tok == ",":
			// grouping/scaling directive, no output of its own
		case token.IsLiteral(tok):
			sb.WriteString(literalText(tok))
		default:
			sb.WriteString(tok)
		}
	}
	if !emitted {
		sb.WriteString(digits)
	}
}

// insertThousandsSep inserts commas every three digits from the right in an
// integer string (digits only, no sign).
func insertThousandsSep(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ── decimal renderer ──────────────────────────────────────────────────────────

// renderDecimal renders val with a plain number layout.
func renderDecimal(val float64, sec *section.Section, sectionCount int) string {
	d := sec.Number
	_, intZeros := countPlaceholders(d.BeforeDecimal)
	fracPlaces, fracZeros := countPlaceholders(d.AfterDecimal)

	absVal := math.Abs(val) * d.PercentMultiplier
	if d.ThousandDivisor > 1 {
		absVal /= d.ThousandDivisor
	}

	intStr, fracStr := splitFixed(absVal, d.DecimalSeparator, fracPlaces, fracZeros)

	for len(intStr) < intZeros {
		intStr = "0" + intStr
	}
	if d.ThousandSeparator {
		intStr = insertThousandsSep(intStr)
	}

	var sb strings.Builder
	if needsMinus(val, sectionCount, d.BeforeDecimal, d.AfterDecimal) {
		sb.WriteByte('-')
	}
	writeDigitGroup(&sb, d.BeforeDecimal, intStr)
	if d.DecimalSeparator && fracStr != "" {
		sb.WriteByte('.')
	}
	if d.DecimalSeparator {
		writeDigitGroup(&sb, d.AfterDecimal, fracStr)
	}
	return sb.String()
}

// splitFixed formats absVal with fracPlaces decimal places and splits the
// result around the decimal point.  Trailing zeros beyond what the zero
// placeholders require are trimmed (they belong to # and ? placeholders).
func splitFixed(absVal float64, decimalSeparator bool, fracPlaces, fracZeros int) (intStr, fracStr string) {
	if !decimalSeparator {
		return strconv.FormatFloat(absVal, 'f', 0, 64), ""
	}
	formatted := strconv.FormatFloat(absVal, 'f', fracPlaces, 64)
	if dot := strings.IndexByte(formatted, '.'); dot >= 0 {
		intStr, fracStr = formatted[:dot], formatted[dot+1:]
	} else {
		intStr = formatted
		fracStr = strings.Repeat("0", fracPlaces)
	}
	for len(fracStr) > fracZeros && strings.HasSuffix(fracStr, "0") {
		fracStr = fracStr[:len(fracStr)-1]
	}
	return intStr, fracStr
}

// ── exponential renderer ──────────────────────────────────────────────────────

// renderExponential renders val in scientific notation.  The number of
// integer placeholders in the mantissa dictates the exponent stepping, so
// "##0.0E+0" produces engineering notation (exponent a multiple of 3).
func renderExponential(val float64, sec *section.Section, sectionCount int) string {
	e := sec.Exponential
	intPlaces, intZeros := countPlaceholders(e.BeforeDecimal)
	fracPlaces, fracZeros := countPlaceholders(e.AfterDecimal)
	_, powZeros := countPlaceholders(e.Power)
	if intPlaces < 1 {
		intPlaces = 1
	}

	absVal := math.Abs(val)
	exp := 0
	mantissa := absVal
	if absVal != 0 {
		exp = int(math.Floor(math.Log10(absVal)))
		exp = floorDiv(exp, intPlaces) * intPlaces
		mantissa = absVal / math.Pow(10, float64(exp))
		// Rounding the mantissa can push it past the placeholder range.
		scale := math.Pow(10, float64(fracPlaces))
		limit := math.Pow(10, float64(intPlaces))
		if math.Round(mantissa*scale)/scale >= limit {
			exp += intPlaces
			mantissa = absVal / math.Pow(10, float64(exp))
		}
	}

	intStr, fracStr := splitFixed(mantissa, e.DecimalSeparator, fracPlaces, fracZeros)
	for len(intStr) < intZeros {
		intStr = "0" + intStr
	}

	var sb strings.Builder
	if needsMinus(val, sectionCount, e.BeforeDecimal, e.AfterDecimal) {
		sb.WriteByte('-')
	}
	writeDigitGroup(&sb, e.BeforeDecimal, intStr)
	if e.DecimalSeparator && fracStr != "" {
		sb.WriteByte('.')
	}
	if e.DecimalSeparator {
		writeDigitGroup(&sb, e.AfterDecimal, fracStr)
	}

	// Marker letter keeps the case it was written with.
	sb.WriteByte(e.ExponentialToken[0])
	if exp < 0 {
		sb.WriteByte('-')
	} else if e.ShowPlusSign() {
		sb.WriteByte('+')
	}
	expStr := strconv.Itoa(abs(exp))
	for len(expStr) < powZeros {
		expStr = "0" + expStr
	}
	writeDigitGroup(&sb, e.Power, expStr)
	return sb.String()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ── fraction renderer ─────────────────────────────────────────────────────────

// renderFraction renders val as a vulgar fraction.  A constant denominator
// is used as-is; a placeholder denominator is searched for the best
// approximation bounded by the placeholder count (capped at four digits).
func renderFraction(val float64, sec *section.Section, sectionCount int) string {
	f := sec.Fraction
	absVal := math.Abs(val)

	var whole int64
	target := absVal
	if f.IntegerPart != nil {
		whole = int64(absVal)
		target = absVal - float64(whole)
	}

	var num, den int64
	if f.DenominatorConstant > 0 {
		den = int64(f.DenominatorConstant)
		num = int64(math.Round(target * float64(den)))
	} else {
		digits := len(f.Denominator)
		if digits > 4 {
			digits = 4
		}
		maxDen := int64(math.Pow(10, float64(digits))) - 1
		num, den = bestFraction(target, maxDen)
	}
	if f.IntegerPart != nil && num == den && den > 0 {
		whole++
		num = 0
	}

	_, intZeros := countPlaceholders(f.IntegerPart)
	_, numZeros := countPlaceholders(f.Numerator)
	_, denZeros := countPlaceholders(f.Denominator)

	var sb strings.Builder
	if needsMinus(val, sectionCount, f.IntegerPart, f.Numerator, f.DenominatorPrefix, f.DenominatorSuffix) {
		sb.WriteByte('-')
	}
	if f.IntegerPart != nil {
		intStr := strconv.FormatInt(whole, 10)
		if whole == 0 && intZeros == 0 {
			intStr = ""
		}
		writeDigitGroup(&sb, f.IntegerPart, intStr)
	}
	writeDigitGroup(&sb, f.Numerator, pad(num, numZeros))
	sb.WriteByte('/')
	writeDigitGroup(&sb, f.DenominatorPrefix, "")
	if f.DenominatorConstant > 0 {
		sb.WriteString(strconv.Itoa(f.DenominatorConstant))
	} else {
		writeDigitGroup(&sb, f.Denominator, pad(den, denZeros))
	}
	writeDigitGroup(&sb, f.DenominatorSuffix, "")
	writeDigitGroup(&sb, f.FractionSuffix, "")
	return sb.String()
}

// bestFraction returns the numerator and denominator (≤ maxDen) that best
// approximate target.
func bestFraction(target float64, maxDen int64) (num, den int64) {
	den = 1
	num = int64(math.Round(target))
	bestErr := math.Abs(target - float64(num))
	for d := int64(1); d <= maxDen; d++ {
		n := int64(math.Round(target * float64(d)))
		err := math.Abs(target - float64(n)/float64(d))
		if err < bestErr {
			num, den, bestErr = n, d, err
			if err == 0 {
				break
			}
		}
	}
	return num, den
}

func pad(v int64, zeros int) string {
	s := strconv.FormatInt(v, 10)
	for len(s) < zeros {
		s = "0" + s
	}
	return s
}
