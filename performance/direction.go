package performance

// resolveDirection returns the direction to evaluate with. DirectionAuto is
// inferred from the cuts of the levels in order: strictly increasing means
// higher, strictly decreasing means lower. Anything else falls back to lower
// with a diagnostic.
func (e *evaluation) resolveDirection() Direction {
	switch e.opts.Direction {
	case DirectionHigher, DirectionLower:
		return e.opts.Direction
	case DirectionAuto:
	default:
		e.addf("Unknown direction %q; defaulting to %q", e.opts.Direction, DirectionLower)
		return DirectionLower
	}

	levels := e.opts.Levels
	if len(levels) < 2 {
		e.addf("Cannot infer direction: at least two levels are required; defaulting to %q", DirectionLower)
		return DirectionLower
	}

	values := make([]float64, 0, len(levels))
	for _, label := range levels {
		i, ok := e.lookup(label)
		if !ok {
			e.addf("Cannot infer direction: level %q not found in standards; defaulting to %q", label, DirectionLower)
			return DirectionLower
		}
		c := e.cut(i)
		if !parseable(c) {
			e.addf("Cannot infer direction: level %q has unparsable cut %v; defaulting to %q", label, e.standards[i].Cut, DirectionLower)
			return DirectionLower
		}
		values = append(values, c)
	}

	increasing, decreasing := true, true
	for k := 1; k < len(values); k++ {
		if !(values[k] > values[k-1]) {
			increasing = false
		}
		if !(values[k] < values[k-1]) {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return DirectionHigher
	case decreasing:
		return DirectionLower
	default:
		e.addf("Cannot infer direction: level cuts are not strictly monotonic; defaulting to %q", DirectionLower)
		return DirectionLower
	}
}

// InferDirection resolves DirectionAuto for standards and levels without
// computing a match. It returns the inferred direction and any diagnostics;
// a non-empty diagnostic list means inference failed and DirectionLower was
// chosen.
func InferDirection(standards []Standard, levels []string, parser Parser) (Direction, []string) {
	e := newEvaluation(standards, (&Options{
		Direction: DirectionAuto,
		Levels:    levels,
		Parser:    parser,
	}).withDefaults())
	dir := e.resolveDirection()
	return dir, e.diags
}
