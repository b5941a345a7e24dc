package performance

import (
	"fmt"
	"math"
)

const emptyStandards = "standards must be a non-empty list"

var nanMetric = math.NaN()

// ComputePerformance matches metric against standards and reports the next
// better standard and the distance to it.
//
// The call proceeds in stages:
//  1. resolve the direction (explicit, or inferred from opts.Levels)
//  2. validate labels, levels and level ordering
//  3. parse the metric and every cut, then pick the tightest matching cut
//  4. find the next better standard and compute the gap
//
// In ValidationModeThrow a stage that leaves diagnostics behind aborts the
// call with a *ValidationError, so validation problems are reported before
// the metric is even parsed. Otherwise the returned error is always nil and
// diagnostics are found in Result.Validation.
//
// Index refers to the caller's standards slice; standards are never reordered
// or modified. When nothing matches, the next standard is measured from the
// metric itself so the caller still sees how far off they are.
func ComputePerformance(metric any, standards []Standard, opts *Options) (*Result, error) {
	o := opts.withDefaults()

	if len(standards) == 0 {
		if o.ValidationMode == ValidationModeThrow {
			return nil, &ValidationError{Errors: []string{emptyStandards}}
		}
		dir := o.Direction
		if dir == DirectionAuto {
			dir = DirectionLower
		}
		return &Result{
			Label:      UnknownLabel,
			Index:      -1,
			Direction:  dir,
			Validation: Validation{Valid: false, Errors: []string{emptyStandards}},
		}, nil
	}

	e := newEvaluation(standards, o)

	dir := e.resolveDirection()
	e.validate(dir)
	if err := e.failure(); err != nil {
		return nil, err
	}

	value, diag := safeParse(o.Parser, metric)
	if diag != "" {
		e.diags = append(e.diags, diag)
	} else if !parseable(value) {
		e.addf("Unparsable metric: %v", metric)
	}

	matched := e.match(dir, value)
	if err := e.failure(); err != nil {
		return nil, err
	}

	result := &Result{
		Label:     UnknownLabel,
		Index:     -1,
		Direction: dir,
	}

	ref := value
	if matched >= 0 {
		s := standards[matched]
		result.Label = s.Label
		result.Index = matched
		result.Standard = &s
		ref = e.cuts[matched]
	}

	if n := e.next(dir, ref); n >= 0 {
		s := standards[n]
		result.NextStandard = &s
		result.NextCut = fmt.Sprintf("%s (%v)", s.Label, s.Cut)

		d := diff(dir, value, e.cuts[n])
		result.DiffToNext = &d
		result.DiffToNextFormatted = &FormattedDiff{
			Absolute: o.FormatAbsolute(d.Absolute),
			Relative: o.FormatRelative(d.Relative),
		}
	}

	result.Validation = Validation{
		Valid:  len(e.diags) == 0,
		Errors: e.diags,
	}
	return result, nil
}
