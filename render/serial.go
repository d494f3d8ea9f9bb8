package render

import (
	"fmt"
	"math"
	"time"
)

// ConvertSerial converts a spreadsheet date serial number to a [time.Time]
// value, respecting the workbook's date system.
//
// Serials count days since the epoch, with the fractional part representing
// the time of day.  In the 1900 system (date1904 false) Lotus 1-2-3
// incorrectly treated 1900 as a leap year and Excel perpetuates the bug, so
// three branches apply:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → subtract one day to compensate for the phantom leap day
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// In the 1904 system serial 0 is 1904-01-01 and no compensation applies.
// The fractional-day component is rounded to whole seconds with a
// half-second rule; rounding up to exactly midnight rolls over to the next
// day.
func ConvertSerial(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("render: ConvertSerial: invalid value %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("render: ConvertSerial: negative serial %v not supported", serial)
	}
	// Serial 2,958,465 is 9999-12-31 in the 1900 system; the 1904 system is
	// offset by 1462 days (four years including the 1904 leap day).  Larger
	// values would overflow time.Duration arithmetic.
	maxSerial := float64(2_958_466)
	if date1904 {
		maxSerial -= 1462
	}
	if serial > maxSerial {
		return time.Time{}, fmt.Errorf("render: ConvertSerial: serial %v exceeds maximum supported value %v", serial, maxSerial)
	}

	fracSec, dayRollover := serialToFracSec(serial)
	intPart := int(serial) + dayRollover

	if date1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}

	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	var t time.Time
	switch {
	case intPart == 0:
		t = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second)
	case intPart >= 61:
		t = base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second)
	default:
		t = base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second)
	}
	return t, nil
}

// serialToFracSec converts the fractional-day part of a serial to a whole
// second count within the day (0–86399) plus a day-rollover flag (0 or 1).
//
// A small epsilon is added before conversion to absorb floating-point
// drift, then the nanosecond remainder is rounded with a half-second rule.
// Rounding up to exactly 86400 rolls over to the next day rather than
// clamping.
func serialToFracSec(serial float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover := int(secs / 86400)
	secs = secs % 86400
	return secs, rollover
}

// convertSerialTrunc is ConvertSerial without the half-second rounding:
// the seconds field is truncated instead.  Sections with a sub-second
// token use it so the fractional seconds are not counted twice.
func convertSerialTrunc(serial float64, date1904 bool) (time.Time, error) {
	whole := math.Trunc(serial)
	daySecs := math.Floor((serial - whole) * 86400)
	return ConvertSerial(whole+daySecs/86400, date1904)
}
