package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-numfmt/section"
	"github.com/TsubasaBE/go-numfmt/token"
)

// renderDateTime renders a date/time serial number using the tokens of a
// Date or Duration section.  serial is the raw serial (fractional days
// since the epoch).
func renderDateTime(serial float64, sec *section.Section, date1904 bool) string {
	// Pre-scan: an AM/PM token anywhere folds hours to 12-hour form, and a
	// sub-second token switches the conversion to truncated seconds so the
	// fraction is not counted twice.
	hasAmPm := false
	hasSubSecond := false
	for _, tok := range sec.Tokens {
		if isAmPm(tok) {
			hasAmPm = true
		}
		if isSubSecond(tok) {
			hasSubSecond = true
		}
	}

	var t time.Time
	var err error
	if hasSubSecond {
		t, err = convertSerialTrunc(serial, date1904)
	} else {
		t, err = ConvertSerial(serial, date1904)
	}
	if err != nil {
		// Fallback: render the raw number so the value is never dropped.
		return renderGeneral(serial)
	}

	var sb strings.Builder
	lastWasHour := false

	for i, tok := range sec.Tokens {
		switch {
		case token.IsDurationPart(tok):
			// Elapsed tokens operate on the raw serial.
			inner := tok[1 : len(tok)-1]
			sb.WriteString(renderElapsed(inner, serial))
			lastWasHour = lowerByte(inner[0]) == 'h'

		case isSubSecond(tok):
			sb.WriteString(renderSubSecond(serial, len(tok)-1))
			lastWasHour = false

		case isAmPm(tok):
			sb.WriteString(renderAmPm(tok, t))
			lastWasHour = false

		case isDateLetterRun(tok):
			sb.WriteString(renderDateToken(tok, t, hasAmPm, lastWasHour, nextRunIsSeconds(sec.Tokens, i)))
			lastWasHour = lowerByte(tok[0]) == 'h'

		case token.IsLiteral(tok):
			// Literal separators between an hour token and a following
			// m/mm must not break the minute-vs-month disambiguation,
			// so lastWasHour survives.
			sb.WriteString(literalText(tok))

		default:
			// Plain separators such as ":" and "/".
			sb.WriteString(tok)
		}
	}

	// A section whose tokens are purely decorative still renders the value.
	if sb.Len() == 0 {
		return renderGeneral(serial)
	}
	return sb.String()
}

// isDateLetterRun reports whether tok is a calendar letter run (the
// bracketed elapsed and am/pm forms are handled before this check).
func isDateLetterRun(tok string) bool {
	if tok == "" {
		return false
	}
	switch lowerByte(tok[0]) {
	case 'y', 'm', 'd', 'h', 's', 'g', 'e':
		return true
	}
	return false
}

func isAmPm(tok string) bool {
	return strings.EqualFold(tok, "am/pm") || strings.EqualFold(tok, "a/p")
}

// isSubSecond reports whether tok is a merged sub-second token: a '.'
// followed by one or more zeros, as produced by the millisecond merge.
func isSubSecond(tok string) bool {
	if len(tok) < 2 || tok[0] != '.' {
		return false
	}
	for i := 1; i < len(tok); i++ {
		if tok[i] != '0' {
			return false
		}
	}
	return true
}

// nextRunIsSeconds scans forward from position i for the next calendar
// letter run and reports whether it is a seconds run.  An m/mm directly
// before seconds means minutes even without a preceding hour token
// ("mm:ss").
func nextRunIsSeconds(toks []string, i int) bool {
	for _, tok := range toks[i+1:] {
		if isDateLetterRun(tok) {
			return lowerByte(tok[0]) == 's'
		}
		if token.IsDurationPart(tok) || isAmPm(tok) {
			return false
		}
	}
	return false
}

// renderDateToken renders a single calendar letter run.
func renderDateToken(tok string, t time.Time, hasAmPm, lastWasHour, beforeSeconds bool) string {
	n := len(tok)
	switch lowerByte(tok[0]) {

	case 'y':
		if n >= 3 {
			return fmt.Sprintf("%04d", t.Year())
		}
		return fmt.Sprintf("%02d", t.Year()%100)

	case 'e':
		// Era years are rendered as calendar years; era names are not
		// resolved (locale data is out of scope).
		return fmt.Sprintf("%04d", t.Year())

	case 'g':
		return ""

	case 'm':
		if n <= 2 && (lastWasHour || beforeSeconds) {
			return padInt(t.Minute(), n)
		}
		switch {
		case n == 1:
			return strconv.Itoa(int(t.Month()))
		case n == 2:
			return fmt.Sprintf("%02d", int(t.Month()))
		case n == 3:
			return t.Month().String()[:3]
		case n == 4:
			return t.Month().String()
		default:
			return t.Month().String()[:1]
		}

	case 'd':
		switch {
		case n == 1:
			return strconv.Itoa(t.Day())
		case n == 2:
			return fmt.Sprintf("%02d", t.Day())
		case n == 3:
			return t.Weekday().String()[:3]
		default:
			return t.Weekday().String()
		}

	case 'h':
		h := t.Hour()
		if hasAmPm {
			h = h % 12
			if h == 0 {
				h = 12
			}
		}
		return padInt(h, n)

	case 's':
		return padInt(t.Second(), n)
	}
	return ""
}

func renderAmPm(tok string, t time.Time) string {
	pm := t.Hour() >= 12
	if strings.EqualFold(tok, "a/p") {
		if pm {
			return "P"
		}
		return "A"
	}
	if pm {
		return "PM"
	}
	return "AM"
}

// renderElapsed renders an elapsed-time unit run (brackets already
// stripped) as the total count of that unit in the raw serial, zero-padded
// to the run length.
func renderElapsed(inner string, serial float64) string {
	var total int64
	switch lowerByte(inner[0]) {
	case 'h':
		total = int64(serial * 24)
	case 'm':
		total = int64(serial * 24 * 60)
	case 's':
		total = int64(serial * 24 * 3600)
	}
	s := strconv.FormatInt(total, 10)
	for len(s) < len(inner) {
		s = "0" + s
	}
	return s
}

// renderSubSecond renders the fractional-second part of the serial to the
// requested number of digits, including the leading decimal point.
func renderSubSecond(serial float64, digits int) string {
	daySecs := (serial - math.Trunc(serial)) * 86400
	frac := daySecs - math.Floor(daySecs)
	scale := math.Pow(10, float64(digits))
	v := int(math.Round(frac * scale))
	if v >= int(scale) {
		v = int(scale) - 1
	}
	return "." + fmt.Sprintf("%0*d", digits, v)
}

func padInt(v, width int) string {
	if width <= 1 {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%02d", v)
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
