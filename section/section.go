// Package section parses one semicolon-delimited part of a number format
// string into a typed [Section].
//
// A format string holds up to four sections governing positive, negative,
// zero and text values.  Each section resolves to exactly one kind — date,
// duration, general, text, fraction, exponential or plain number — and
// carries exactly one payload matching that kind, plus an optional condition
// and colour parsed from [...] expressions.
package section

import (
	"strconv"
	"strings"
)

// Type identifies the kind of a parsed section and thereby which payload
// field is populated.
type Type int

const (
	// General sections carry the General keyword in Tokens.
	General Type = iota
	// Number sections carry a plain decimal layout in Number.
	Number
	// Fraction sections carry a vulgar-fraction layout in Fraction.
	Fraction
	// Exponential sections carry a scientific-notation layout in Exponential.
	Exponential
	// Date sections carry calendar date/time tokens in Tokens.
	Date
	// Duration sections carry elapsed-time tokens in Tokens.
	Duration
	// Text sections carry literal and @ tokens in Tokens.
	Text
)

// String returns the name of the section type.
func (t Type) String() string {
	switch t {
	case General:
		return "General"
	case Number:
		return "Number"
	case Fraction:
		return "Fraction"
	case Exponential:
		return "Exponential"
	case Date:
		return "Date"
	case Duration:
		return "Duration"
	case Text:
		return "Text"
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Condition is a relational predicate parsed from a [<op><value>] bracket
// expression, e.g. [>=100].  The renderer uses it to pick a section based on
// the value being formatted; the parser itself never evaluates it.
type Condition struct {
	// Operator is one of <=, <>, <, >=, >, =.
	Operator string
	// Value is parsed with a fixed '.' decimal convention, independent of
	// the caller's locale.
	Value float64
}

// Evaluate reports whether v satisfies the condition.
func (c *Condition) Evaluate(v float64) bool {
	switch c.Operator {
	case "<":
		return v < c.Value
	case "<=":
		return v <= c.Value
	case ">":
		return v > c.Value
	case ">=":
		return v >= c.Value
	case "<>":
		return v != c.Value
	case "=":
		return v == c.Value
	}
	return false
}

// String returns the condition in its bracketed source form.
func (c *Condition) String() string {
	return "[" + c.Operator + strconv.FormatFloat(c.Value, 'G', -1, 64) + "]"
}

// DecimalLayout describes a plain number section: the token runs before and
// after the decimal point, plus the scaling directives parsed from comma and
// percent literals.
type DecimalLayout struct {
	BeforeDecimal    []string
	DecimalSeparator bool
	AfterDecimal     []string

	// ThousandSeparator is set when a comma appears between digit
	// placeholders, requesting grouped integer digits.
	ThousandSeparator bool
	// ThousandDivisor is 1000^n for n commas trailing the last placeholder.
	ThousandDivisor float64
	// PercentMultiplier is 100 when the section contains a % literal, else 1.
	PercentMultiplier float64
}

// ExponentialLayout describes a scientific-notation section: a mantissa
// layout, the exponent marker token, and the exponent digit placeholders.
type ExponentialLayout struct {
	BeforeDecimal    []string
	DecimalSeparator bool
	AfterDecimal     []string

	// ExponentialToken is the marker as written, "e+" / "E-" etc.
	ExponentialToken string
	// Power holds the tokens after the marker, normally digit placeholders.
	Power []string
}

// ShowPlusSign reports whether a non-negative exponent renders with an
// explicit plus sign ("e+" marker) or with no sign ("e-" marker).
func (e *ExponentialLayout) ShowPlusSign() bool {
	return strings.Contains(e.ExponentialToken, "+")
}

// FractionLayout describes a vulgar-fraction section such as "# ??/??" or
// "0/8": an optional integer part, the numerator placeholders, and a
// denominator that is either a placeholder run or a fixed integer constant.
type FractionLayout struct {
	IntegerPart []string
	Numerator   []string

	DenominatorPrefix []string
	// Denominator holds the placeholder tokens when the denominator is
	// computed; empty when DenominatorConstant is used.
	Denominator []string
	// DenominatorConstant is the fixed denominator (e.g. 8 in "?/8"),
	// or 0 when the denominator is placeholder-driven.
	DenominatorConstant int
	DenominatorSuffix   []string
	FractionSuffix      []string
}

// Section is one parsed semicolon-delimited part of a format string.
//
// Exactly one payload is populated, determined by Type: Tokens for
// General/Text/Date/Duration, Number for plain numbers, Fraction and
// Exponential for their respective layouts.
type Section struct {
	Type  Type
	Index int

	// Condition and Color are optional; at most one of each is attached
	// (the first successful bracket match per category wins).
	Condition *Condition
	Color     string

	// Locale is the opaque identifier captured from a [$-xxx] bracket,
	// for a downstream locale resolver.  It emits no output token.
	Locale string

	Tokens      []string
	Number      *DecimalLayout
	Fraction    *FractionLayout
	Exponential *ExponentialLayout
}

// String reassembles a parseable textual form of the section.  Re-parsing
// the result yields a section of the same type with the same payload shape;
// it is not guaranteed to be byte-identical to the original source.
func (s *Section) String() string {
	var sb strings.Builder
	if s.Condition != nil {
		sb.WriteString(s.Condition.String())
	}
	if s.Color != "" {
		sb.WriteString("[" + s.Color + "]")
	}
	if s.Locale != "" {
		sb.WriteString("[$-" + s.Locale + "]")
	}
	switch s.Type {
	case Number:
		writeDecimalTokens(&sb, s.Number.BeforeDecimal, s.Number.DecimalSeparator, s.Number.AfterDecimal)
	case Exponential:
		e := s.Exponential
		writeDecimalTokens(&sb, e.BeforeDecimal, e.DecimalSeparator, e.AfterDecimal)
		sb.WriteString(e.ExponentialToken)
		writeTokens(&sb, e.Power)
	case Fraction:
		f := s.Fraction
		writeTokens(&sb, f.IntegerPart)
		writeTokens(&sb, f.Numerator)
		sb.WriteByte('/')
		writeTokens(&sb, f.DenominatorPrefix)
		if f.DenominatorConstant > 0 {
			sb.WriteString(strconv.Itoa(f.DenominatorConstant))
		} else {
			writeTokens(&sb, f.Denominator)
		}
		writeTokens(&sb, f.DenominatorSuffix)
		writeTokens(&sb, f.FractionSuffix)
	default:
		writeTokens(&sb, s.Tokens)
	}
	return sb.String()
}

func writeTokens(sb *strings.Builder, toks []string) {
	for _, tok := range toks {
		sb.WriteString(tok)
	}
}

func writeDecimalTokens(sb *strings.Builder, before []string, sep bool, after []string) {
	writeTokens(sb, before)
	if sep {
		sb.WriteByte('.')
	}
	writeTokens(sb, after)
}
