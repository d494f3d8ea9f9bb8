// Package numfmt parses Excel-style number format strings — e.g.
// "#,##0.00;[Red]-#,##0.00;;@" — into a typed list of sections that a
// renderer can apply to concrete values.
//
// # Quick start
//
//	spec := numfmt.Parse("[>=100]0.0;[Red]-0.0")
//	if spec.HasSyntaxError { ... }
//
//	for _, sec := range spec.Sections {
//	    fmt.Println(sec.Index, sec.Type, sec.Color)
//	}
//
// # Sections
//
// A format string holds up to four ';'-separated sections, conventionally
// positive, negative, zero and text.  [Parse] classifies each section as
// General, Number, Fraction, Exponential, Date, Duration or Text and
// attaches any condition ([>=100]), colour ([Red]), currency symbol
// ([$€-407]) or locale identifier ([$-411]) parsed from its bracket
// expressions.  See [github.com/TsubasaBE/go-numfmt/section] for the data
// model.
//
// # Error handling
//
// Malformed input never aborts a parse.  Sections that fail lexically or
// structurally are dropped, the sections parsed before the failure are
// kept, and [FormatSpec.HasSyntaxError] records that at least one section
// failed.  Unrecognised bracket content inside an otherwise valid section
// is silently ignored.
//
// # Rendering
//
// [github.com/TsubasaBE/go-numfmt/render] formats concrete values
// (numbers, dates, durations, text) with a parsed spec, including the
// builtin ECMA-376 format IDs resolved by [LookupBuiltIn].
package numfmt

import (
	"github.com/TsubasaBE/go-numfmt/internal/cursor"
	"github.com/TsubasaBE/go-numfmt/internal/dateformat"
	"github.com/TsubasaBE/go-numfmt/section"
)

// Version is the current version of the go-numfmt library.
const Version = "1.0.0"

// FormatSpec is the result of parsing one format string: the sections in
// source order plus an aggregate syntax-error flag.  It is immutable after
// Parse returns.
type FormatSpec struct {
	Sections []*section.Section
	// HasSyntaxError is set when at least one section failed to parse.
	// The sections that did parse are kept regardless.
	HasSyntaxError bool
}

// Parse parses a complete format string into its sections.
//
// Parsing is locale-independent: numeric literals inside conditions always
// use '.' as the decimal separator.  Parse never fails outright; see
// [FormatSpec.HasSyntaxError].
func Parse(format string) *FormatSpec {
	cur := cursor.New(format)
	spec := &FormatSpec{}

	// A ';' terminator promises a following section; reaching end of
	// input instead is a syntax error, but never discards the sections
	// already accepted.
	expectMore := false
	for {
		sec, sawSemicolon, syntaxErr := section.Parse(cur, len(spec.Sections))
		if syntaxErr {
			spec.HasSyntaxError = true
		}
		if sec == nil {
			if expectMore && !syntaxErr {
				spec.HasSyntaxError = true
			}
			break
		}
		spec.Sections = append(spec.Sections, sec)
		expectMore = sawSemicolon
	}
	return spec
}

// IsDateFormat reports whether a number-format ID (and optional custom
// format string) represents a date, datetime or duration format.
//
// For built-in formats (id < 164) formatStr is ignored and the ECMA-376
// §18.8.30 date/time ID ranges decide.  For custom formats the unquoted
// portion of formatStr is scanned for date token characters; double-quoted
// literals and bracket expressions are skipped, and an e/E preceded by a
// digit placeholder counts as a scientific-notation marker rather than an
// era token.
func IsDateFormat(id int, formatStr string) bool {
	if dateformat.IsBuiltInDateID(id) {
		return true
	}
	if id < 164 {
		return false // other built-in IDs are never dates
	}
	return dateformat.ScanFormatStr(formatStr)
}
