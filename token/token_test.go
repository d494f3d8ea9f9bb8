package token

import "testing"

func TestIsPlaceholder(t *testing.T) {
	for _, tok := range []string{"0", "#", "?", "@"} {
		if !IsPlaceholder(tok) {
			t.Errorf("IsPlaceholder(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"00", "y", "", "5", "."} {
		if IsPlaceholder(tok) {
			t.Errorf("IsPlaceholder(%q) = true, want false", tok)
		}
	}
}

func TestIsDatePart(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"yyyy", true},
		{"YY", true},
		{"m", true},
		{"MMM", true},
		{"dd", true},
		{"ss", true},
		{"hh", true},
		{"g", true},
		{"gg", true},
		{"e", true},
		{"ee", true},
		{"am/pm", true},
		{"AM/PM", true},
		{"a/p", true},
		{"[h]", true},
		{"[mm]", true},
		{"[SS]", true},
		// Overlapping shapes resolved against date parts:
		{"General", false},
		{"general", false},
		{"e+", false},
		{"E-", false},
		// Brackets that are not unit-only elapsed tokens:
		{"[Red]", false},
		{"[magenta]", false},
		{"[>=100]", false},
		{"0", false},
		{"@", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := IsDatePart(tc.tok); got != tc.want {
			t.Errorf("IsDatePart(%q) = %v, want %v", tc.tok, got, tc.want)
		}
	}
}

func TestIsDurationPart(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"[h]", true},
		{"[hh]", true},
		{"[HH]", true},
		{"[mm]", true},
		{"[m]", true},
		{"[ss]", true},
		{"[hm]", false},
		{"[d]", false},
		{"[]", false},
		{"hh", false},
		{"[magenta]", false},
	}
	for _, tc := range tests {
		if got := IsDurationPart(tc.tok); got != tc.want {
			t.Errorf("IsDurationPart(%q) = %v, want %v", tc.tok, got, tc.want)
		}
	}
}

func TestIsGeneral(t *testing.T) {
	if !IsGeneral("General") || !IsGeneral("GENERAL") || !IsGeneral("general") {
		t.Error("IsGeneral should match any case")
	}
	if IsGeneral("Gen") || IsGeneral("g") {
		t.Error("IsGeneral should not match prefixes")
	}
}

func TestIsNumberLiteral(t *testing.T) {
	for _, tok := range []string{"0", "#", "?", ".", ",", "$", "%", "(", ")", " ", "5", `"USD"`, `\x`, "_)", "*-"} {
		if !IsNumberLiteral(tok) {
			t.Errorf("IsNumberLiteral(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"/", ";", "yyyy", "e+", ""} {
		if IsNumberLiteral(tok) {
			t.Errorf("IsNumberLiteral(%q) = true, want false", tok)
		}
	}
}

func TestIsExponent(t *testing.T) {
	for _, tok := range []string{"e+", "e-", "E+", "E-"} {
		if !IsExponent(tok) {
			t.Errorf("IsExponent(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"e", "E", "e0", "+"} {
		if IsExponent(tok) {
			t.Errorf("IsExponent(%q) = true, want false", tok)
		}
	}
}

func TestDigitHelpers(t *testing.T) {
	if !IsDigit19("1") || !IsDigit19("9") || IsDigit19("0") || IsDigit19("10") {
		t.Error("IsDigit19 range is 1–9, single character")
	}
	if !IsDigit09("0") || !IsDigit09("5") || IsDigit09("a") {
		t.Error("IsDigit09 range is 0–9, single character")
	}
}
