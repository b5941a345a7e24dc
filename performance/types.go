package performance

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownLabel is reported when the metric does not meet any standard.
const UnknownLabel = "unknown"

// Direction controls whether larger or smaller metric values are better.
type Direction string

const (
	// DirectionLower means smaller metrics are better; cuts are maxima.
	DirectionLower Direction = "lower"

	// DirectionHigher means larger metrics are better; cuts are minima.
	DirectionHigher Direction = "higher"

	// DirectionAuto infers the direction from the cuts of Options.Levels.
	DirectionAuto Direction = "auto"
)

// ParseDirection converts a string into a Direction.
// An empty string yields the default, DirectionLower.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", DirectionLower:
		return DirectionLower, nil
	case DirectionHigher:
		return DirectionHigher, nil
	case DirectionAuto:
		return DirectionAuto, nil
	default:
		return "", fmt.Errorf("unknown direction %q (expected higher, lower or auto)", s)
	}
}

// ValidationMode controls what happens when diagnostics are produced.
type ValidationMode string

const (
	// ValidationModeWarn collects diagnostics in Result.Validation.
	ValidationModeWarn ValidationMode = "warn"

	// ValidationModeThrow aborts the computation with a *ValidationError.
	ValidationModeThrow ValidationMode = "throw"
)

// ParseValidationMode converts a string into a ValidationMode.
// An empty string yields the default, ValidationModeWarn.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch ValidationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ValidationModeWarn:
		return ValidationModeWarn, nil
	case ValidationModeThrow:
		return ValidationModeThrow, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q (expected warn or throw)", s)
	}
}

// Standard is a single named threshold.
type Standard struct {
	// Label names the standard (e.g., "AA"). Labels should be unique.
	Label string `json:"label" yaml:"label"`

	// Cut is the threshold value: a number or a string understood by the parser.
	Cut any `json:"cut" yaml:"cut"`

	// ID is an optional stable identifier
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Description is optional free text
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// MarshalJSON renders non-finite float cuts (e.g., an open-ended "+Inf"
// slowest standard) as strings, which encoding/json cannot otherwise encode.
func (s Standard) MarshalJSON() ([]byte, error) {
	type plain Standard
	p := plain(s)
	if f, ok := p.Cut.(float64); ok {
		p.Cut = jsonFloat(f)
	}
	return json.Marshal(p)
}

// jsonFloat returns f, or its string form ("+Inf", "NaN") when encoding/json
// would reject it.
func jsonFloat(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return f
}

// Parser converts a metric or cut into a number.
//
// Unparsable input should yield NaN with a nil error. A returned error (or a
// panic) is reported as a "Parser error: ..." diagnostic and the value is
// treated as unparsable.
type Parser func(v any) (float64, error)

// Formatter renders a difference for display. Formatters are trusted: a
// panicking formatter is not recovered.
type Formatter func(v float64) string

// Options configures ComputePerformance. The zero value is usable.
type Options struct {
	// Direction defaults to DirectionLower
	Direction Direction

	// Levels lists standard labels from worst to best
	Levels []string

	// Parser defaults to ParseDuration
	Parser Parser

	// FormatAbsolute defaults to FormatDuration
	FormatAbsolute Formatter

	// FormatRelative defaults to FormatPercent
	FormatRelative Formatter

	// ValidationMode defaults to ValidationModeWarn
	ValidationMode ValidationMode
}

// withDefaults returns a copy of o with every unset field filled in.
func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Direction == "" {
		out.Direction = DirectionLower
	}
	if out.Parser == nil {
		out.Parser = ParseDuration
	}
	if out.FormatAbsolute == nil {
		out.FormatAbsolute = FormatDuration
	}
	if out.FormatRelative == nil {
		out.FormatRelative = FormatPercent
	}
	if out.ValidationMode == "" {
		out.ValidationMode = ValidationModeWarn
	}
	return out
}

// Diff is the numeric distance to the next standard.
type Diff struct {
	// Absolute is the non-negative gap in metric units
	Absolute float64 `json:"absolute" yaml:"absolute"`

	// Relative is Absolute as a percentage of the next cut
	Relative float64 `json:"relative" yaml:"relative"`
}

// MarshalJSON renders non-finite gaps as strings. An open-ended "+Inf" next
// cut under DirectionHigher yields an infinite Absolute and a NaN Relative.
func (d Diff) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Absolute any `json:"absolute"`
		Relative any `json:"relative"`
	}{jsonFloat(d.Absolute), jsonFloat(d.Relative)})
}

// FormattedDiff is a Diff rendered through the configured formatters.
type FormattedDiff struct {
	Absolute string `json:"absolute" yaml:"absolute"`
	Relative string `json:"relative" yaml:"relative"`
}

// Validation holds the diagnostics produced by a computation.
type Validation struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors" yaml:"errors"`
}

// Result is the outcome of ComputePerformance.
//
// Exactly one of two states holds: matched (Index >= 0 and Standard set) or
// unmatched (Index == -1 and Label == UnknownLabel). DiffToNext is only set
// when NextStandard is.
type Result struct {
	// Label is the matched label, or UnknownLabel
	Label string `json:"label" yaml:"label"`

	// Index is the position of the match in the caller's standards slice, or -1
	Index int `json:"index" yaml:"index"`

	// Standard is the matched entry
	Standard *Standard `json:"standard,omitempty" yaml:"standard,omitempty"`

	// NextStandard is the next strictly better standard, nil at the top level
	NextStandard *Standard `json:"nextStandard" yaml:"nextStandard"`

	// NextCut renders NextStandard as "<label> (<cut>)"
	NextCut string `json:"nextCut,omitempty" yaml:"nextCut,omitempty"`

	// DiffToNext is the distance from the metric to NextStandard's cut
	DiffToNext *Diff `json:"diffToNext" yaml:"diffToNext"`

	// DiffToNextFormatted is DiffToNext rendered for display
	DiffToNextFormatted *FormattedDiff `json:"diffToNextFormatted" yaml:"diffToNextFormatted"`

	// Direction is the resolved direction (never DirectionAuto)
	Direction Direction `json:"direction" yaml:"direction"`

	// Validation lists the diagnostics in detection order
	Validation Validation `json:"validation" yaml:"validation"`
}

// Matched reports whether the metric met a standard.
func (r *Result) Matched() bool {
	return r.Index >= 0
}

// ValidationError is returned in ValidationModeThrow when diagnostics exist.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}
