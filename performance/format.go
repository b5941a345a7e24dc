package performance

import (
	"fmt"
	"math"
	"strconv"
)

// maxHundredths bounds the values that fit the int64 clock arithmetic.
const maxHundredths = math.MaxInt64 / 100

// FormatDuration is the default absolute Formatter. It renders seconds as
// "H:MM:SS.dd" from one hour, "M:SS.dd" from one minute and "SS.dd" below
// that. Seconds are always two digits and hundredths are rounded.
// Negative values are prefixed with "-". Values too large for a clock are
// printed as plain numbers.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Sprintf("%v", seconds)
	}
	if math.Abs(seconds) >= maxHundredths/100 {
		return strconv.FormatFloat(seconds, 'g', -1, 64)
	}

	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	// Round once so 59.999 carries into the minute instead of printing "60.00".
	hundredths := int64(math.Round(seconds * 100))
	if hundredths == 0 {
		sign = ""
	}

	h := hundredths / 360000
	m := (hundredths / 6000) % 60
	s := hundredths % 6000

	switch {
	case h > 0:
		return fmt.Sprintf("%s%d:%02d:%02d.%02d", sign, h, m, s/100, s%100)
	case m > 0:
		return fmt.Sprintf("%s%d:%02d.%02d", sign, m, s/100, s%100)
	default:
		return fmt.Sprintf("%s%02d.%02d", sign, s/100, s%100)
	}
}

// FormatPercent is the default relative Formatter: one decimal and a "%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
