package section

import (
	"reflect"
	"testing"

	"github.com/TsubasaBE/go-numfmt/internal/cursor"
)

// parseOne parses a single section from src and fails the test on a syntax
// error or missing section.
func parseOne(t *testing.T, src string) *Section {
	t.Helper()
	sec, _, syntaxErr := Parse(cursor.New(src), 0)
	if syntaxErr {
		t.Fatalf("Parse(%q) reported a syntax error", src)
	}
	if sec == nil {
		t.Fatalf("Parse(%q) produced no section", src)
	}
	return sec
}

func TestParseNumberSection(t *testing.T) {
	sec := parseOne(t, "#,##0.00")
	if sec.Type != Number {
		t.Fatalf("Type = %v, want Number", sec.Type)
	}
	d := sec.Number
	if d == nil {
		t.Fatal("Number payload missing")
	}
	if !d.DecimalSeparator {
		t.Error("DecimalSeparator = false, want true")
	}
	if want := []string{"0", "0"}; !reflect.DeepEqual(d.AfterDecimal, want) {
		t.Errorf("AfterDecimal = %v, want %v", d.AfterDecimal, want)
	}
	if !d.ThousandSeparator {
		t.Error("ThousandSeparator = false, want true")
	}
	if d.ThousandDivisor != 1 {
		t.Errorf("ThousandDivisor = %v, want 1", d.ThousandDivisor)
	}
}

func TestParseTrailingCommaScaling(t *testing.T) {
	sec := parseOne(t, "0,,")
	if sec.Type != Number {
		t.Fatalf("Type = %v, want Number", sec.Type)
	}
	if sec.Number.ThousandDivisor != 1e6 {
		t.Errorf("ThousandDivisor = %v, want 1e6", sec.Number.ThousandDivisor)
	}
	if sec.Number.ThousandSeparator {
		t.Error("trailing commas are scaling, not grouping")
	}
}

func TestParsePercent(t *testing.T) {
	sec := parseOne(t, "0.00%")
	if sec.Number.PercentMultiplier != 100 {
		t.Errorf("PercentMultiplier = %v, want 100", sec.Number.PercentMultiplier)
	}
}

func TestParseCondition(t *testing.T) {
	tests := []struct {
		src      string
		wantOp   string
		wantVal  float64
	}{
		{"[>=100]0", ">=", 100},
		{"[<-2.5]0", "<", -2.5},
		{"[<>0]0", "<>", 0},
		{"[=1e+3]0", "=", 1000},
		{"[>1.5E-2]0", ">", 0.015},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			sec := parseOne(t, tc.src)
			if sec.Condition == nil {
				t.Fatal("Condition missing")
			}
			if sec.Condition.Operator != tc.wantOp {
				t.Errorf("Operator = %q, want %q", sec.Condition.Operator, tc.wantOp)
			}
			if sec.Condition.Value != tc.wantVal {
				t.Errorf("Value = %v, want %v", sec.Condition.Value, tc.wantVal)
			}
			if sec.Type != Number {
				t.Errorf("Type = %v, want Number", sec.Type)
			}
		})
	}
}

func TestParseConditionBadExponentFallsThrough(t *testing.T) {
	// The exponent marker without trailing digits fails the whole
	// condition attempt; the bracket is then no colour, currency or
	// locale either, so it is silently dropped.
	sec := parseOne(t, "[>=1e+]0")
	if sec.Condition != nil {
		t.Errorf("Condition = %+v, want nil", sec.Condition)
	}
	if sec.Type != Number {
		t.Errorf("Type = %v, want Number", sec.Type)
	}
}

func TestParseColor(t *testing.T) {
	sec := parseOne(t, "[Red]0.00")
	if sec.Color != "Red" {
		t.Errorf("Color = %q, want %q", sec.Color, "Red")
	}
	if sec.Condition != nil {
		t.Error("a colour bracket must not produce a condition")
	}
	if got, want := len(sec.Number.AfterDecimal), 2; got != want {
		t.Errorf("fractional placeholders = %d, want %d", got, want)
	}

	// Case as typed is preserved.
	sec = parseOne(t, "[CYAN]0")
	if sec.Color != "CYAN" {
		t.Errorf("Color = %q, want %q", sec.Color, "CYAN")
	}
}

func TestParseUnknownColorDropped(t *testing.T) {
	// Numbered palette colours are out of scope and fall through all four
	// bracket kinds.
	sec := parseOne(t, "[Color3]0")
	if sec.Color != "" || sec.Condition != nil || sec.Locale != "" {
		t.Errorf("unknown bracket content must be dropped, got %+v", sec)
	}
	if sec.Type != Number {
		t.Errorf("Type = %v, want Number", sec.Type)
	}
}

func TestParseCurrencySymbol(t *testing.T) {
	sec := parseOne(t, "[$€-407]#,##0")
	if sec.Type != Number {
		t.Fatalf("Type = %v, want Number", sec.Type)
	}
	found := false
	for _, tok := range sec.Number.BeforeDecimal {
		if tok == `"€"` {
			found = true
		}
		if tok == "407" || tok == `"407"` {
			t.Errorf("locale id leaked into the token stream: %q", tok)
		}
	}
	if !found {
		t.Errorf("currency symbol literal missing from %v", sec.Number.BeforeDecimal)
	}
}

func TestParseLocaleID(t *testing.T) {
	sec := parseOne(t, "[$-411]0")
	if sec.Locale != "411" {
		t.Errorf("Locale = %q, want %q", sec.Locale, "411")
	}
	if want := []string{"0"}; !reflect.DeepEqual(sec.Number.BeforeDecimal, want) {
		t.Errorf("BeforeDecimal = %v, want %v (no currency literal)", sec.Number.BeforeDecimal, want)
	}
}

func TestParseDateSection(t *testing.T) {
	sec := parseOne(t, "yyyy-mm-dd")
	if sec.Type != Date {
		t.Fatalf("Type = %v, want Date", sec.Type)
	}
	want := []string{"yyyy", "-", "mm", "-", "dd"}
	if !reflect.DeepEqual(sec.Tokens, want) {
		t.Errorf("Tokens = %v, want %v", sec.Tokens, want)
	}
}

func TestParseDurationSection(t *testing.T) {
	sec := parseOne(t, "[h]:mm:ss")
	if sec.Type != Duration {
		t.Fatalf("Type = %v, want Duration", sec.Type)
	}
	if sec.Tokens[0] != "[h]" {
		t.Errorf("Tokens[0] = %q, want %q", sec.Tokens[0], "[h]")
	}
}

func TestMillisecondMerge(t *testing.T) {
	sec := parseOne(t, "hh:mm:ss.000")
	want := []string{"hh", ":", "mm", ":", "ss", ".000"}
	if !reflect.DeepEqual(sec.Tokens, want) {
		t.Errorf("Tokens = %v, want %v", sec.Tokens, want)
	}
}

func TestMillisecondMergeLoneDot(t *testing.T) {
	sec := parseOne(t, "hh:mm:ss.")
	want := []string{"hh", ":", "mm", ":", "ss", "."}
	if !reflect.DeepEqual(sec.Tokens, want) {
		t.Errorf("Tokens = %v, want %v", sec.Tokens, want)
	}
}

func TestParseGeneralSection(t *testing.T) {
	for _, src := range []string{"General", "GENERAL", "general"} {
		sec := parseOne(t, src)
		if sec.Type != General {
			t.Errorf("Parse(%q).Type = %v, want General", src, sec.Type)
		}
	}
}

func TestParseTextSection(t *testing.T) {
	sec := parseOne(t, `"total: "@`)
	if sec.Type != Text {
		t.Fatalf("Type = %v, want Text", sec.Type)
	}
	want := []string{`"total: "`, "@"}
	if !reflect.DeepEqual(sec.Tokens, want) {
		t.Errorf("Tokens = %v, want %v", sec.Tokens, want)
	}
}

func TestParseLiteralOnlySectionIsText(t *testing.T) {
	sec := parseOne(t, `"n/a"`)
	if sec.Type != Text {
		t.Errorf("Type = %v, want Text (no placeholders present)", sec.Type)
	}
}

func TestParseFractionSection(t *testing.T) {
	sec := parseOne(t, "# ?/?")
	if sec.Type != Fraction {
		t.Fatalf("Type = %v, want Fraction", sec.Type)
	}
	f := sec.Fraction
	if want := []string{"#", " "}; !reflect.DeepEqual(f.IntegerPart, want) {
		t.Errorf("IntegerPart = %v, want %v", f.IntegerPart, want)
	}
	if want := []string{"?"}; !reflect.DeepEqual(f.Numerator, want) {
		t.Errorf("Numerator = %v, want %v", f.Numerator, want)
	}
	if want := []string{"?"}; !reflect.DeepEqual(f.Denominator, want) {
		t.Errorf("Denominator = %v, want %v", f.Denominator, want)
	}
	if f.DenominatorConstant != 0 {
		t.Errorf("DenominatorConstant = %d, want 0", f.DenominatorConstant)
	}
}

func TestParseFractionConstantDenominator(t *testing.T) {
	sec := parseOne(t, "0/8")
	if sec.Type != Fraction {
		t.Fatalf("Type = %v, want Fraction", sec.Type)
	}
	if sec.Fraction.DenominatorConstant != 8 {
		t.Errorf("DenominatorConstant = %d, want 8", sec.Fraction.DenominatorConstant)
	}
	if sec.Fraction.IntegerPart != nil {
		t.Errorf("IntegerPart = %v, want nil", sec.Fraction.IntegerPart)
	}
}

func TestParseExponentialSection(t *testing.T) {
	sec := parseOne(t, "0.00E+00")
	if sec.Type != Exponential {
		t.Fatalf("Type = %v, want Exponential", sec.Type)
	}
	e := sec.Exponential
	if e.ExponentialToken != "E+" {
		t.Errorf("ExponentialToken = %q, want %q", e.ExponentialToken, "E+")
	}
	if !e.ShowPlusSign() {
		t.Error("ShowPlusSign() = false, want true")
	}
	if want := []string{"0", "0"}; !reflect.DeepEqual(e.Power, want) {
		t.Errorf("Power = %v, want %v", e.Power, want)
	}
}

func TestSecondDecimalPointLeniency(t *testing.T) {
	// The first '.' wins as the decimal point; a later '.' is accepted as
	// an ordinary literal inside the "after" group.  Documented leniency,
	// preserved deliberately.
	sec := parseOne(t, "0.0.0")
	if sec.Type != Number {
		t.Fatalf("Type = %v, want Number", sec.Type)
	}
	want := []string{"0", ".", "0"}
	if !reflect.DeepEqual(sec.Number.AfterDecimal, want) {
		t.Errorf("AfterDecimal = %v, want %v", sec.Number.AfterDecimal, want)
	}
}

func TestMutualExclusivity(t *testing.T) {
	for _, src := range []string{"yyyy@", "General@", "yyyyGeneral"} {
		t.Run(src, func(t *testing.T) {
			sec, _, syntaxErr := Parse(cursor.New(src), 0)
			if !syntaxErr {
				t.Error("mixed section kinds must report a syntax error")
			}
			if sec != nil {
				t.Errorf("section = %+v, want nil", sec)
			}
		})
	}
}

func TestLexicalError(t *testing.T) {
	sec, _, syntaxErr := Parse(cursor.New("0abc"), 0)
	if !syntaxErr {
		t.Error("unrecognised input must report a syntax error")
	}
	if sec != nil {
		t.Errorf("section = %+v, want nil", sec)
	}
}

func TestSemicolonTermination(t *testing.T) {
	cur := cursor.New("0;@")
	sec, sawSemicolon, syntaxErr := Parse(cur, 0)
	if syntaxErr || sec == nil {
		t.Fatal("first section should parse")
	}
	if !sawSemicolon {
		t.Error("sawSemicolon = false, want true")
	}
	sec, sawSemicolon, syntaxErr = Parse(cur, 1)
	if syntaxErr || sec == nil || sec.Type != Text {
		t.Fatalf("second section = %+v (err=%v), want a Text section", sec, syntaxErr)
	}
	if sawSemicolon {
		t.Error("sawSemicolon = true at end of input, want false")
	}
}

func TestEscapedLiterals(t *testing.T) {
	sec := parseOne(t, `0\h`)
	if sec.Type != Number {
		t.Fatalf("Type = %v, want Number (escaped h is a literal, not a date part)", sec.Type)
	}
	want := []string{"0", `\h`}
	if !reflect.DeepEqual(sec.Number.BeforeDecimal, want) {
		t.Errorf("BeforeDecimal = %v, want %v", sec.Number.BeforeDecimal, want)
	}
}

func TestConditionEvaluate(t *testing.T) {
	tests := []struct {
		op   string
		v    float64
		want bool
	}{
		{"<", 1, true},
		{"<", 5, false},
		{"<=", 5, true},
		{">", 9, true},
		{">=", 5, true},
		{"=", 5, true},
		{"<>", 5, false},
		{"<>", 4, true},
	}
	for _, tc := range tests {
		c := &Condition{Operator: tc.op, Value: 5}
		if got := c.Evaluate(tc.v); got != tc.want {
			t.Errorf("(%v %s 5) = %v, want %v", tc.v, tc.op, got, tc.want)
		}
	}
}

func TestSectionStringRoundTrip(t *testing.T) {
	for _, src := range []string{
		"0.00",
		"#,##0",
		"0%",
		"yyyy-mm-dd",
		"[h]:mm:ss",
		"# ?/?",
		"0/8",
		"0.00E+00",
		"[>=100][Red]0.0",
		`"total: "@`,
	} {
		t.Run(src, func(t *testing.T) {
			first := parseOne(t, src)
			second := parseOne(t, first.String())
			if first.Type != second.Type {
				t.Fatalf("round-trip changed type: %v -> %v", first.Type, second.Type)
			}
			if second.Color != first.Color {
				t.Errorf("round-trip changed colour: %q -> %q", first.Color, second.Color)
			}
			if (first.Condition == nil) != (second.Condition == nil) {
				t.Error("round-trip changed condition presence")
			}
			if !reflect.DeepEqual(first.Tokens, second.Tokens) {
				t.Errorf("round-trip changed tokens: %v -> %v", first.Tokens, second.Tokens)
			}
		})
	}
}
