package output

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/cutline/internal/summary"
	"github.com/wesleyorama2/cutline/performance"
)

var sprintStandards = []performance.Standard{
	{Label: "Low", Cut: 100},
	{Label: "Mid", Cut: 90, ID: "mid-2025", Description: "Regional qualifier"},
	{Label: "High", Cut: 80},
}

func compute(t *testing.T, metric any) *performance.Result {
	t.Helper()
	r, err := performance.ComputePerformance(metric, sprintStandards, &performance.Options{Direction: performance.DirectionLower})
	require.NoError(t, err)
	return r
}

func sampleReport(t *testing.T) *Report {
	t.Helper()
	evals := []Evaluation{
		{Set: "100m", Metric: "86", Result: compute(t, 86)},
		{Set: "100m", Metric: "120", Result: compute(t, 120)},
		{Set: "100m", Metric: "75", Result: compute(t, 75)},
		{Set: "100m", Metric: "fast", Error: "Unparsable metric: fast"},
	}

	c := summary.NewCollector()
	for _, e := range evals {
		if e.Error != "" {
			c.AddFailure()
			continue
		}
		c.Add(e.Result)
	}

	return &Report{Name: "sprint", Evaluations: evals, Summary: c.Summary()}
}

func sampleValidation() *ValidationReport {
	return &ValidationReport{
		File: "standards.yaml",
		Sets: []SetValidation{
			{Name: "100m", Direction: performance.DirectionLower, Validation: performance.Validation{Valid: true, Errors: []string{}}},
			{Name: "200m", Direction: performance.DirectionLower, Validation: performance.Validation{
				Valid:  false,
				Errors: []string{`Duplicate label "A"`},
			}},
		},
	}
}
