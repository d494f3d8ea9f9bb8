package section

import (
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-numfmt/internal/cursor"
	"github.com/TsubasaBE/go-numfmt/token"
)

// symbolChars are the single-character tokens recognised by the tokenizer.
// Note that ';' is a member: the section terminator surfaces as an ordinary
// token and the parse loop stops on it.
const symbolChars = "#?,!&%+-$€£0123456789{}():;/.@ "

// tokenLetters are the date/era letters lexed as case-sensitive runs.
// The exponent markers e+/e- are tried first, so a bare e-run here is an
// era token, not a truncated exponent.
var tokenLetters = []rune{
	'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S', 'e', 'E', 'g', 'G',
}

// Parse reads one section from cur.
//
// It returns the parsed section (nil when the input yields no section),
// whether the section was terminated by a ';' delimiter rather than end of
// input, and whether a syntax error occurred.  A lexical error, a mix of
// date/general/text tokens, or a placeholder run matching none of the
// fraction/exponential/decimal layouts all discard the section and report a
// syntax error.
func Parse(cur *cursor.Cursor, index int) (sec *Section, sawSemicolon, syntaxErr bool) {
	var (
		hasDateParts     bool
		hasDurationParts bool
		hasGeneral       bool
		hasTextToken     bool
		hasPlaceholders  bool
		cond             *Condition
		color            string
		locale           string
		toks             []string
	)

	for {
		tok, lexErr := readToken(cur)
		if lexErr {
			return nil, sawSemicolon, true
		}
		if tok == "" {
			break
		}
		if tok == ";" {
			sawSemicolon = true
			break
		}

		if token.IsPlaceholder(tok) {
			hasPlaceholders = true
		}
		switch {
		case token.IsDatePart(tok):
			// Elapsed [h]/[mm]/[ss] tokens land here, ahead of the
			// generic bracket handling below.
			hasDateParts = true
			if token.IsDurationPart(tok) {
				hasDurationParts = true
			}
			toks = append(toks, tok)
		case token.IsGeneral(tok):
			hasGeneral = true
			toks = append(toks, tok)
		case tok == "@":
			hasTextToken = true
			toks = append(toks, tok)
		case strings.HasPrefix(tok, "["):
			expr := tok[1 : len(tok)-1]
			handled := false
			if cond == nil {
				if c, ok := parseCondition(expr); ok {
					cond = c
					handled = true
				}
			}
			if !handled && color == "" {
				if c, ok := parseColor(expr); ok {
					color = c
					handled = true
				}
			}
			if !handled {
				if sym, ok := parseCurrencySymbol(expr); ok {
					// Re-emit the symbol as a quoted literal so it
					// renders as plain text.
					toks = append(toks, `"`+sym+`"`)
					handled = true
				}
			}
			if !handled && locale == "" {
				if id, ok := parseLocaleID(expr); ok {
					locale = id
				}
			}
			// Unrecognised bracket content is dropped without error,
			// which keeps unknown directives forward-compatible.
		default:
			toks = append(toks, tok)
		}
	}

	if len(toks) == 0 {
		return nil, sawSemicolon, false
	}
	if (hasDateParts && (hasGeneral || hasTextToken)) || (hasGeneral && hasTextToken) {
		return nil, sawSemicolon, true
	}

	sec = &Section{
		Index:     index,
		Condition: cond,
		Color:     color,
		Locale:    locale,
	}
	switch {
	case hasDateParts:
		if hasDurationParts {
			sec.Type = Duration
		} else {
			sec.Type = Date
		}
		sec.Tokens = mergeMilliseconds(toks)
	case hasGeneral:
		sec.Type = General
		sec.Tokens = toks
	case hasTextToken || !hasPlaceholders:
		sec.Type = Text
		sec.Tokens = toks
	default:
		if f, ok := parseFraction(toks); ok {
			sec.Type = Fraction
			sec.Fraction = f
		} else if e, ok := parseExponential(toks); ok {
			sec.Type = Exponential
			sec.Exponential = e
		} else if d, ok := parseDecimal(toks); ok {
			sec.Type = Number
			sec.Number = d
		} else {
			return nil, sawSemicolon, true
		}
	}
	return sec, sawSemicolon, false
}

// ── tokenizer ─────────────────────────────────────────────────────────────────

// readToken reads the next raw token.  The alternatives are tried in a
// fixed priority order and the first match wins; this preserves the
// tie-breaks between overlapping shapes ("e+" exponent vs "e" era run,
// "General" vs a "G" era run).  An empty token with lexErr false means end
// of input; lexErr is set when input remains but nothing matches.
func readToken(cur *cursor.Cursor) (tok string, lexErr bool) {
	offset := cur.Pos()
	if readLiteral(cur) ||
		cur.ReadEnclosed('[', ']') ||
		cur.ReadOneOf(symbolChars) ||
		cur.ReadString("e+", true) ||
		cur.ReadString("e-", true) ||
		cur.ReadString("General", true) ||
		cur.ReadString("am/pm", true) ||
		cur.ReadString("a/p", true) ||
		readLetterRun(cur) {
		return cur.Substring(offset, cur.Pos()-offset), false
	}
	return "", cur.Pos() < cur.Len()
}

func readLetterRun(cur *cursor.Cursor) bool {
	for _, ch := range tokenLetters {
		if cur.ReadOneOrMore(ch) {
			return true
		}
	}
	return false
}

// readLiteral matches the escape forms that always render as literal text:
// backslash, fill (*) and skip-width (_) each consume the marker plus the
// following character; double quotes consume through the closing quote.
func readLiteral(cur *cursor.Cursor) bool {
	switch cur.Peek() {
	case '\\', '*', '_':
		cur.Advance(2)
		return true
	}
	return cur.ReadEnclosed('"', '"')
}

// ── bracket-expression sub-parsers ────────────────────────────────────────────

// conditionOperators in longest-match-first order within each family.
var conditionOperators = []string{"<=", "<>", "<", ">=", ">", "="}

// parseCondition interprets expr as a relational operator followed by a
// numeric literal.  The value substring is handed to strconv.ParseFloat
// as-is, so the decimal separator is always '.' regardless of locale.
func parseCondition(expr string) (*Condition, bool) {
	cur := cursor.New(expr)
	var op string
	for _, o := range conditionOperators {
		if cur.ReadString(o, false) {
			op = o
			break
		}
	}
	if op == "" {
		return nil, false
	}
	start := cur.Pos()
	if !readConditionValue(cur) {
		return nil, false
	}
	v, err := strconv.ParseFloat(cur.Substring(start, cur.Pos()-start), 64)
	if err != nil {
		return nil, false
	}
	return &Condition{Operator: op, Value: v}, true
}

// readConditionValue consumes an optional minus, a digit run, an optional
// '.' plus digit run, and an optional exponent tail.  An exponent marker
// with no trailing digits fails the whole value, which in turn fails the
// condition attempt.
func readConditionValue(cur *cursor.Cursor) bool {
	const digits = "0123456789"
	cur.ReadString("-", false)
	for cur.ReadOneOf(digits) {
	}
	if cur.ReadString(".", false) {
		for cur.ReadOneOf(digits) {
		}
	}
	if cur.ReadString("e+", true) || cur.ReadString("e-", true) {
		if !cur.ReadOneOf(digits) {
			return false
		}
		for cur.ReadOneOf(digits) {
		}
	}
	return true
}

// colorNames is the fixed 8-colour palette.  Numbered palette colours
// (Color1..Color59) are not recognised and fall through with the rest of
// the unknown bracket content.
var colorNames = []string{
	"black", "blue", "cyan", "green", "magenta", "red", "white", "yellow",
}

// parseColor matches expr against the palette, case-insensitively, and
// returns the matched prefix as typed.
func parseColor(expr string) (string, bool) {
	cur := cursor.New(expr)
	for _, name := range colorNames {
		if cur.ReadString(name, true) {
			return cur.Substring(0, cur.Pos()), true
		}
	}
	return "", false
}

// parseCurrencySymbol extracts the symbol from a [$sym-locale] or [$sym]
// expression.  An empty symbol fails so that pure locale brackets [$-411]
// fall through to parseLocaleID.
func parseCurrencySymbol(expr string) (string, bool) {
	if !strings.HasPrefix(expr, "$") {
		return "", false
	}
	sym := expr[1:]
	if i := strings.IndexByte(sym, '-'); i >= 0 {
		sym = sym[:i]
	}
	if sym == "" {
		return "", false
	}
	return sym, true
}

// parseLocaleID extracts the opaque identifier from a [$-xxx] expression.
func parseLocaleID(expr string) (string, bool) {
	id, found := strings.CutPrefix(expr, "$-")
	if !found || id == "" {
		return "", false
	}
	return id, true
}

// ── number-layout sub-parsers ─────────────────────────────────────────────────

// splitDecimal partitions a token run around its first '.' token.  It
// returns the number of tokens consumed, the groups before and after the
// decimal point, and whether a decimal point was seen.  Bracket tokens are
// skipped (their content was consumed upstream); any other non-number token
// halts the scan.
//
// A second '.' is not a second decimal point: once the split has happened,
// later periods satisfy the number-literal check and accumulate into the
// "after" group as ordinary literals.  This leniency is deliberate.
func splitDecimal(toks []string) (consumed int, before, after []string, sawDecimal bool) {
	var run []string
	idx := 0
scan:
	for ; idx < len(toks); idx++ {
		tok := toks[idx]
		switch {
		case tok == "." && !sawDecimal:
			sawDecimal = true
			before = run
			run = nil
		case token.IsNumberLiteral(tok):
			run = append(run, tok)
		case strings.HasPrefix(tok, "["):
			// already handled by the bracket sub-parsers
		default:
			break scan
		}
	}
	if len(run) > 0 {
		if sawDecimal {
			after = run
		} else {
			before = run
		}
	}
	return idx, before, after, sawDecimal
}

// parseDecimal accepts the run only when the decimal split consumes every
// token of the section.
func parseDecimal(toks []string) (*DecimalLayout, bool) {
	consumed, before, after, sawDecimal := splitDecimal(toks)
	if consumed != len(toks) {
		return nil, false
	}
	d := &DecimalLayout{
		BeforeDecimal:     before,
		DecimalSeparator:  sawDecimal,
		AfterDecimal:      after,
		PercentMultiplier: percentMultiplier(toks),
	}
	d.ThousandDivisor, d.ThousandSeparator = commaDirectives(toks)
	return d, true
}

// percentMultiplier returns 100 when the section contains a percent
// literal, else 1.
func percentMultiplier(toks []string) float64 {
	for _, tok := range toks {
		if tok == "%" {
			return 100
		}
	}
	return 1
}

// commaDirectives interprets the comma literals of a number section: each
// comma after the last digit placeholder divides the value by 1000, any
// earlier comma requests thousand-separated integer digits.
func commaDirectives(toks []string) (divisor float64, thousandSep bool) {
	divisor = 1
	seenPlaceholder := false
	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]
		switch {
		case !seenPlaceholder && token.IsPlaceholder(tok):
			seenPlaceholder = true
		case !seenPlaceholder && tok == ",":
			divisor *= 1000
		case seenPlaceholder && tok == ",":
			thousandSep = true
		}
	}
	return divisor, thousandSep
}

// parseExponential accepts a mantissa number run immediately followed by an
// exponent marker token; everything after the marker is the power layout.
func parseExponential(toks []string) (*ExponentialLayout, bool) {
	consumed, before, after, sawDecimal := splitDecimal(toks)
	if consumed == 0 || consumed >= len(toks) {
		return nil, false
	}
	if !token.IsExponent(toks[consumed]) {
		return nil, false
	}
	power := make([]string, len(toks)-consumed-1)
	copy(power, toks[consumed+1:])
	return &ExponentialLayout{
		BeforeDecimal:    before,
		DecimalSeparator: sawDecimal,
		AfterDecimal:     after,
		ExponentialToken: toks[consumed],
		Power:            power,
	}, true
}

// parseFraction accepts a numerator placeholder run, a '/' token, and a
// denominator that is either a placeholder run or a fixed integer constant.
// Tokens left of the numerator run form the integer part.
func parseFraction(toks []string) (*FractionLayout, bool) {
	slash := -1
	for i, tok := range toks {
		if tok == "/" {
			slash = i
			break
		}
	}
	if slash < 0 {
		return nil, false
	}

	f := &FractionLayout{}
	f.IntegerPart, f.Numerator = splitNumerator(toks[:slash])
	if !parseDenominator(toks[slash+1:], f) {
		return nil, false
	}
	return f, true
}

// splitNumerator walks the tokens before the '/' backwards: the trailing
// placeholder run is the numerator; if a gap followed by further
// placeholders precedes it, everything up to the gap is the integer part.
func splitNumerator(toks []string) (integerPart, numerator []string) {
	hasPlaceholder := false
	hasGap := false
	numeratorIdx := -1
	for i := len(toks) - 1; i >= 0; i-- {
		if token.IsPlaceholder(toks[i]) {
			hasPlaceholder = true
			if hasGap {
				// Placeholders on the far side of the gap: an
				// integer part exists.
				return toks[:numeratorIdx], toks[numeratorIdx:]
			}
		} else if hasPlaceholder && !hasGap {
			numeratorIdx = i + 1
			hasGap = true
		}
	}
	return nil, toks
}

// parseDenominator fills in the denominator fields of f from the tokens
// after the '/'.  The denominator proper is either a run of placeholders or
// a run of literal digits forming a fixed constant; leading non-placeholder
// tokens become the prefix.  Remaining tokens are the suffix, split into a
// denominator suffix and a fraction suffix when more placeholders follow.
func parseDenominator(toks []string, f *FractionLayout) bool {
	idx := 0
	hasPlaceholder := false
	hasConstant := false
	for idx < len(toks) {
		tok := toks[idx]
		if token.IsPlaceholder(tok) {
			hasPlaceholder = true
			break
		}
		if token.IsDigit19(tok) {
			hasConstant = true
			break
		}
		idx++
	}
	if !hasPlaceholder && !hasConstant {
		return false
	}

	denomIdx := idx
	var constant strings.Builder
denominator:
	for idx < len(toks) {
		tok := toks[idx]
		switch {
		case hasPlaceholder && token.IsPlaceholder(tok):
			idx++
		case hasConstant && token.IsDigit09(tok):
			constant.WriteString(tok)
			idx++
		default:
			break denominator
		}
	}

	if denomIdx > 0 {
		f.DenominatorPrefix = toks[:denomIdx]
	}
	if hasPlaceholder {
		f.Denominator = toks[denomIdx:idx]
	} else {
		n, err := strconv.Atoi(constant.String())
		if err != nil {
			return false
		}
		f.DenominatorConstant = n
	}

	if idx < len(toks) {
		// Tokens after the denominator: up to the next placeholder they
		// are the denominator suffix, from there on the fraction suffix.
		split := idx
		for split < len(toks) && !token.IsPlaceholder(toks[split]) {
			split++
		}
		f.DenominatorSuffix = toks[idx:split]
		if split < len(toks) {
			f.FractionSuffix = toks[split:]
		}
	}
	return true
}

// ── millisecond merge ─────────────────────────────────────────────────────────

// mergeMilliseconds rewrites a '.' token immediately followed by one or
// more '0' tokens into a single sub-second token (".000" for three zeros),
// so the renderer sees one semantic unit.  A lone '.' is preserved.
func mergeMilliseconds(toks []string) []string {
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok == "." {
			zeros := 0
			for i+1 < len(toks) && toks[i+1] == "0" {
				i++
				zeros++
			}
			if zeros > 0 {
				tok = "." + strings.Repeat("0", zeros)
			}
		}
		out = append(out, tok)
	}
	return out
}
