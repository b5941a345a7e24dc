package performance

// validate runs the schema checks in order: empty and duplicate labels,
// levels missing from the standards, then pairwise level ordering.
// Every check reports independently; nothing short-circuits.
func (e *evaluation) validate(dir Direction) {
	seen := make(map[string]bool, len(e.standards))
	for i, s := range e.standards {
		if s.Label == "" {
			e.addf("Standard at index %d has an empty label", i)
			continue
		}
		if seen[s.Label] {
			e.addf("Duplicate label %q", s.Label)
			continue
		}
		seen[s.Label] = true
	}

	levels := e.opts.Levels
	for _, label := range levels {
		if _, ok := e.lookup(label); !ok {
			e.addf("Level %q not found in standards", label)
		}
	}

	// Level i is worse than level j for every i < j.
	for i := 0; i < len(levels); i++ {
		wi, ok := e.lookup(levels[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(levels); j++ {
			wj, ok := e.lookup(levels[j])
			if !ok {
				continue
			}
			ci, cj := e.cut(wi), e.cut(wj)
			if !parseable(ci) || !parseable(cj) {
				e.addf("Cannot compare levels %q and %q: unparsable cut", levels[i], levels[j])
				continue
			}
			if !better(dir, cj, ci) {
				e.addf("Ordering violation: level %q (%v) must be %s than level %q (%v) for direction %q",
					levels[j], e.standards[wj].Cut, comparative(dir), levels[i], e.standards[wi].Cut, dir)
			}
		}
	}
}

func comparative(dir Direction) string {
	if dir == DirectionHigher {
		return "higher"
	}
	return "lower"
}

// Validate runs the schema checks ComputePerformance performs, without a
// metric. The direction is resolved first (so DirectionAuto may add its own
// diagnostics) and the cut of every standard is parsed.
func Validate(standards []Standard, opts *Options) Validation {
	o := opts.withDefaults()
	if len(standards) == 0 {
		return Validation{Valid: false, Errors: []string{emptyStandards}}
	}
	e := newEvaluation(standards, o)
	dir := e.resolveDirection()
	e.validate(dir)
	e.match(dir, nanMetric)
	return Validation{Valid: len(e.diags) == 0, Errors: e.diags}
}
