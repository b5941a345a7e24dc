package performance

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	hmsPattern     = regexp.MustCompile(`^(\d+):([0-5]\d):([0-5]\d)(\.\d+)?$`)
	msPattern      = regexp.MustCompile(`^(\d+):([0-5]\d)(\.\d+)?$`)
	decimalPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)
)

// ParseDuration is the default Parser.
//
// Numbers pass through unchanged, including named numeric types; a
// time.Duration is taken in seconds. Strings are tried against these forms, in
// order:
//   - "H:MM:SS[.fff]" -> H*3600 + MM*60 + SS + fraction
//   - "M:SS[.fff]"    -> M*60 + SS + fraction
//   - plain signed integer or decimal ("75.5", "-3")
//
// Anything else falls back to strconv.ParseFloat. Unparsable or non-finite
// strings yield NaN. ParseDuration never returns an error.
func ParseDuration(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case time.Duration:
		return n.Seconds(), nil
	case json.Number:
		return parseDurationString(string(n)), nil
	case string:
		return parseDurationString(n), nil
	}

	// Named numeric types (type Seconds float64) miss the cases above.
	if v != nil {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return float64(rv.Uint()), nil
		case reflect.Float32, reflect.Float64:
			return rv.Float(), nil
		case reflect.String:
			return parseDurationString(rv.String()), nil
		}
	}

	switch n := v.(type) {
	case fmt.Stringer:
		return parseDurationString(n.String()), nil
	default:
		return math.NaN(), nil
	}
}

func parseDurationString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}

	if m := hmsPattern.FindStringSubmatch(s); m != nil {
		return atof(m[1])*3600 + atof(m[2])*60 + atof(m[3]) + fraction(m[4])
	}
	if m := msPattern.FindStringSubmatch(s); m != nil {
		return atof(m[1])*60 + atof(m[2]) + fraction(m[3])
	}
	if decimalPattern.MatchString(s) {
		return atof(s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN()
	}
	return f
}

// atof parses a string already validated by one of the patterns.
func atof(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// fraction turns an optional ".fff" suffix into its value.
func fraction(s string) float64 {
	if s == "" {
		return 0
	}
	return atof("0" + s)
}

// safeParse runs a caller-supplied parser, converting errors and panics into
// a diagnostic and a NaN result.
func safeParse(p Parser, v any) (f float64, diag string) {
	defer func() {
		if r := recover(); r != nil {
			f = math.NaN()
			diag = fmt.Sprintf("Parser error: %v", r)
		}
	}()

	f, err := p(v)
	if err != nil {
		return math.NaN(), fmt.Sprintf("Parser error: %v", err)
	}
	return f, ""
}

// parseable reports whether f can take part in comparisons.
func parseable(f float64) bool {
	return !math.IsNaN(f)
}
