package performance

import (
	"fmt"
	"math"
)

// evaluation carries the state of a single ComputePerformance call.
// Cuts are parsed lazily and at most once, so a failing parser produces one
// diagnostic per standard no matter how many checks look at it.
type evaluation struct {
	standards []Standard
	opts      Options

	cuts         []float64
	parsed       []bool
	parserFailed []bool

	// byLabel maps a label to its first occurrence
	byLabel map[string]int

	diags []string
}

func newEvaluation(standards []Standard, opts Options) *evaluation {
	e := &evaluation{
		standards:    standards,
		opts:         opts,
		cuts:         make([]float64, len(standards)),
		parsed:       make([]bool, len(standards)),
		parserFailed: make([]bool, len(standards)),
		byLabel:      make(map[string]int, len(standards)),
		diags:        []string{},
	}
	for i, s := range standards {
		if _, ok := e.byLabel[s.Label]; !ok {
			e.byLabel[s.Label] = i
		}
	}
	return e
}

func (e *evaluation) addf(format string, args ...any) {
	e.diags = append(e.diags, fmt.Sprintf(format, args...))
}

// cut returns the parsed cut of standard i, NaN when unparsable.
func (e *evaluation) cut(i int) float64 {
	if e.parsed[i] {
		return e.cuts[i]
	}
	f, diag := safeParse(e.opts.Parser, e.standards[i].Cut)
	if diag != "" {
		e.diags = append(e.diags, diag)
		e.parserFailed[i] = true
	}
	e.cuts[i] = f
	e.parsed[i] = true
	return f
}

// lookup returns the index of the first standard labelled label.
func (e *evaluation) lookup(label string) (int, bool) {
	i, ok := e.byLabel[label]
	return i, ok
}

// failure converts the collected diagnostics into an error when the caller
// asked for throw mode.
func (e *evaluation) failure() error {
	if e.opts.ValidationMode != ValidationModeThrow || len(e.diags) == 0 {
		return nil
	}
	errs := make([]string, len(e.diags))
	copy(errs, e.diags)
	return &ValidationError{Errors: errs}
}

// qualifies reports whether metric clears cut under dir.
func qualifies(dir Direction, metric, cut float64) bool {
	if dir == DirectionHigher {
		return metric >= cut
	}
	return metric <= cut
}

// better reports whether a is a strictly better threshold than b under dir.
func better(dir Direction, a, b float64) bool {
	if dir == DirectionHigher {
		return a > b
	}
	return a < b
}

// match returns the index of the tightest standard the metric clears, or -1.
// Ties resolve to the lowest index.
func (e *evaluation) match(dir Direction, metric float64) int {
	best := -1
	for i, s := range e.standards {
		c := e.cut(i)
		if !parseable(c) {
			if !e.parserFailed[i] {
				e.addf("Standard %q has unparsable cut: %v", s.Label, s.Cut)
			}
			continue
		}
		if !parseable(metric) || !qualifies(dir, metric, c) {
			continue
		}
		if best < 0 || better(dir, c, e.cuts[best]) {
			best = i
		}
	}
	return best
}

// next returns the index of the closest standard strictly better than ref,
// or -1 when ref is already at or beyond the best standard.
// Ties resolve to the lowest index.
func (e *evaluation) next(dir Direction, ref float64) int {
	if !parseable(ref) {
		return -1
	}
	found := -1
	for i := range e.standards {
		c := e.cut(i)
		if !parseable(c) || !better(dir, c, ref) {
			continue
		}
		// Closest improvement: the worse of two candidates wins.
		if found < 0 || better(dir, e.cuts[found], c) {
			found = i
		}
	}
	return found
}

// diff computes the gap from metric to cut in the improving direction,
// clamped at zero.
func diff(dir Direction, metric, cut float64) Diff {
	abs := metric - cut
	if dir == DirectionHigher {
		abs = cut - metric
	}
	abs = math.Max(0, abs)

	denom := math.Abs(cut)
	if denom == 0 {
		denom = 1
	}
	return Diff{Absolute: abs, Relative: abs / denom * 100}
}
