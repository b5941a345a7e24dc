package performance

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreStandards() []Standard {
	return []Standard{
		{Label: "Excellent", Cut: 90},
		{Label: "Good", Cut: 75},
		{Label: "Average", Cut: 50},
		{Label: "Poor", Cut: 0},
	}
}

func timeStandards() []Standard {
	return []Standard{
		{Label: "Fast", Cut: 30},
		{Label: "Moderate", Cut: 60},
		{Label: "Slow", Cut: math.Inf(1)},
	}
}

func TestComputePerformance_HigherMatchWithNext(t *testing.T) {
	result, err := ComputePerformance(82, scoreStandards(), &Options{Direction: DirectionHigher})
	require.NoError(t, err)

	assert.Equal(t, "Good", result.Label)
	assert.Equal(t, 1, result.Index)
	require.NotNil(t, result.Standard)
	assert.Equal(t, "Good", result.Standard.Label)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "Excellent", result.NextStandard.Label)
	assert.Equal(t, "Excellent (90)", result.NextCut)

	require.NotNil(t, result.DiffToNext)
	assert.InDelta(t, 8, result.DiffToNext.Absolute, 1e-9)
	assert.InDelta(t, 8.0/90*100, result.DiffToNext.Relative, 1e-9)

	require.NotNil(t, result.DiffToNextFormatted)
	assert.Equal(t, "08.00", result.DiffToNextFormatted.Absolute)
	assert.Equal(t, "8.9%", result.DiffToNextFormatted.Relative)

	assert.Equal(t, DirectionHigher, result.Direction)
	assert.True(t, result.Validation.Valid)
	assert.Empty(t, result.Validation.Errors)
}

func TestComputePerformance_BestLevelHasNoNext(t *testing.T) {
	result, err := ComputePerformance(95, scoreStandards(), &Options{Direction: DirectionHigher})
	require.NoError(t, err)

	assert.Equal(t, "Excellent", result.Label)
	assert.Equal(t, 0, result.Index)
	assert.Nil(t, result.NextStandard)
	assert.Empty(t, result.NextCut)
	assert.Nil(t, result.DiffToNext)
	assert.Nil(t, result.DiffToNextFormatted)
}

func TestComputePerformance_TimeStringLowerDefault(t *testing.T) {
	result, err := ComputePerformance("2:30.00", timeStandards(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Slow", result.Label)
	assert.Equal(t, 2, result.Index)
	assert.Equal(t, DirectionLower, result.Direction)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "Moderate", result.NextStandard.Label)

	require.NotNil(t, result.DiffToNext)
	assert.InDelta(t, 90, result.DiffToNext.Absolute, 1e-9)
	assert.InDelta(t, 150, result.DiffToNext.Relative, 1e-9)
	assert.Equal(t, "1:30.00", result.DiffToNextFormatted.Absolute)
	assert.Equal(t, "150.0%", result.DiffToNextFormatted.Relative)
}

func TestComputePerformance_UnmatchedSuggestsNearest(t *testing.T) {
	result, err := ComputePerformance(-1000, []Standard{{Label: "Positive", Cut: 0}}, &Options{Direction: DirectionHigher})
	require.NoError(t, err)

	assert.Equal(t, UnknownLabel, result.Label)
	assert.Equal(t, -1, result.Index)
	assert.False(t, result.Matched())
	assert.Nil(t, result.Standard)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "Positive", result.NextStandard.Label)

	require.NotNil(t, result.DiffToNext)
	assert.InDelta(t, 1000, result.DiffToNext.Absolute, 1e-9)
	// Next cut is zero, so the denominator falls back to 1.
	assert.InDelta(t, 100000, result.DiffToNext.Relative, 1e-6)
	assert.True(t, result.Validation.Valid)
}

func TestComputePerformance_UnmatchedLower(t *testing.T) {
	standards := []Standard{
		{Label: "A", Cut: "1:00.00"},
		{Label: "B", Cut: "1:10.00"},
	}

	result, err := ComputePerformance("1:15.50", standards, nil)
	require.NoError(t, err)

	assert.Equal(t, UnknownLabel, result.Label)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "B", result.NextStandard.Label)
	assert.InDelta(t, 5.5, result.DiffToNext.Absolute, 1e-9)
	assert.Equal(t, "05.50", result.DiffToNextFormatted.Absolute)
}

func TestComputePerformance_ThrowOnOrderingViolation(t *testing.T) {
	standards := []Standard{
		{Label: "A", Cut: 10},
		{Label: "B", Cut: 50},
	}

	result, err := ComputePerformance(7, standards, &Options{
		Direction:      DirectionHigher,
		Levels:         []string{"B", "A"},
		ValidationMode: ValidationModeThrow,
	})
	require.Error(t, err)
	assert.Nil(t, result)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Errors, 1)
	assert.Contains(t, verr.Errors[0], "Ordering violation")
}

func TestComputePerformance_WarnOnOrderingViolation(t *testing.T) {
	standards := []Standard{
		{Label: "A", Cut: 10},
		{Label: "B", Cut: 50},
	}

	result, err := ComputePerformance(7, standards, &Options{
		Direction: DirectionHigher,
		Levels:    []string{"B", "A"},
	})
	require.NoError(t, err)

	assert.False(t, result.Validation.Valid)
	require.Len(t, result.Validation.Errors, 1)
	assert.Contains(t, result.Validation.Errors[0], `level "A"`)
	assert.Equal(t, UnknownLabel, result.Label)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "A", result.NextStandard.Label)
}

func TestComputePerformance_EmptyStandards(t *testing.T) {
	t.Run("warn", func(t *testing.T) {
		result, err := ComputePerformance(10, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, UnknownLabel, result.Label)
		assert.Equal(t, -1, result.Index)
		assert.False(t, result.Validation.Valid)
		assert.Equal(t, []string{emptyStandards}, result.Validation.Errors)
		assert.Nil(t, result.NextStandard)
	})

	t.Run("throw", func(t *testing.T) {
		result, err := ComputePerformance(10, []Standard{}, &Options{ValidationMode: ValidationModeThrow})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, emptyStandards, err.Error())
	})
}

func TestComputePerformance_UnparsableMetric(t *testing.T) {
	result, err := ComputePerformance("fast-ish", timeStandards(), nil)
	require.NoError(t, err)

	assert.Equal(t, UnknownLabel, result.Label)
	assert.Nil(t, result.NextStandard)
	assert.Nil(t, result.DiffToNext)
	assert.False(t, result.Validation.Valid)
	assert.Equal(t, []string{"Unparsable metric: fast-ish"}, result.Validation.Errors)
}

func TestComputePerformance_UnparsableCutExcluded(t *testing.T) {
	standards := []Standard{
		{Label: "Gold", Cut: "not a time"},
		{Label: "Silver", Cut: "1:00"},
		{Label: "Bronze", Cut: "1:30"},
	}

	result, err := ComputePerformance("55", standards, nil)
	require.NoError(t, err)

	assert.Equal(t, "Silver", result.Label)
	assert.Equal(t, 1, result.Index)
	assert.Nil(t, result.NextStandard)
	assert.Equal(t, []string{`Standard "Gold" has unparsable cut: not a time`}, result.Validation.Errors)
}

func TestComputePerformance_UnparsableCutThrows(t *testing.T) {
	standards := []Standard{
		{Label: "Gold", Cut: "??"},
		{Label: "Silver", Cut: 60},
	}

	_, err := ComputePerformance(55, standards, &Options{ValidationMode: ValidationModeThrow})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Gold"`)
}

func TestComputePerformance_ParserErrorsBecomeDiagnostics(t *testing.T) {
	failing := func(v any) (float64, error) {
		if s, ok := v.(string); ok && s == "bad" {
			return 0, errors.New("cannot read bad")
		}
		return ParseDuration(v)
	}

	standards := []Standard{
		{Label: "A", Cut: "bad"},
		{Label: "B", Cut: 40},
	}

	result, err := ComputePerformance(35, standards, &Options{Parser: failing})
	require.NoError(t, err)

	assert.Equal(t, "B", result.Label)
	assert.Equal(t, []string{"Parser error: cannot read bad"}, result.Validation.Errors)
}

func TestComputePerformance_ParserPanicIsRecovered(t *testing.T) {
	panicky := func(v any) (float64, error) {
		panic("boom")
	}

	result, err := ComputePerformance(35, []Standard{{Label: "A", Cut: 40}}, &Options{Parser: panicky})
	require.NoError(t, err)

	assert.Equal(t, UnknownLabel, result.Label)
	assert.Equal(t, []string{"Parser error: boom", "Parser error: boom"}, result.Validation.Errors)
}

func TestComputePerformance_ParserErrorThrows(t *testing.T) {
	failing := func(v any) (float64, error) {
		return 0, errors.New("nope")
	}

	_, err := ComputePerformance(1, []Standard{{Label: "A", Cut: 1}}, &Options{
		Parser:         failing,
		ValidationMode: ValidationModeThrow,
	})
	require.Error(t, err)
	assert.Equal(t, "Parser error: nope; Parser error: nope", err.Error())
}

func TestComputePerformance_FormatterPanicPropagates(t *testing.T) {
	opts := &Options{
		Direction:      DirectionHigher,
		FormatAbsolute: func(float64) string { panic("formatter failed") },
	}

	assert.PanicsWithValue(t, "formatter failed", func() {
		_, _ = ComputePerformance(82, scoreStandards(), opts)
	})
}

func TestComputePerformance_CustomFormatters(t *testing.T) {
	opts := &Options{
		Direction:      DirectionHigher,
		FormatAbsolute: func(v float64) string { return "abs" },
		FormatRelative: func(v float64) string { return "rel" },
	}

	result, err := ComputePerformance(82, scoreStandards(), opts)
	require.NoError(t, err)
	assert.Equal(t, &FormattedDiff{Absolute: "abs", Relative: "rel"}, result.DiffToNextFormatted)
}

func TestComputePerformance_TiesResolveToLowestIndex(t *testing.T) {
	standards := []Standard{
		{Label: "First", Cut: 60},
		{Label: "Second", Cut: 60},
		{Label: "Third", Cut: 30},
		{Label: "Fourth", Cut: 30},
	}

	result, err := ComputePerformance(45, standards, nil)
	require.NoError(t, err)
	assert.Equal(t, "First", result.Label)
	assert.Equal(t, 0, result.Index)
	require.NotNil(t, result.NextStandard)
	assert.Equal(t, "Third", result.NextStandard.Label)
}

func TestComputePerformance_IndexRefersToCallerOrder(t *testing.T) {
	standards := []Standard{
		{Label: "Poor", Cut: 0},
		{Label: "Excellent", Cut: 90},
		{Label: "Average", Cut: 50},
		{Label: "Good", Cut: 75},
	}

	result, err := ComputePerformance(60, standards, &Options{Direction: DirectionHigher})
	require.NoError(t, err)
	assert.Equal(t, "Average", result.Label)
	assert.Equal(t, 2, result.Index)
	assert.Equal(t, "Good", result.NextStandard.Label)
}

func TestComputePerformance_DoesNotMutateInput(t *testing.T) {
	standards := scoreStandards()
	before := scoreStandards()

	_, err := ComputePerformance("82", standards, &Options{Direction: DirectionAuto, Levels: []string{"Poor", "Average", "Good", "Excellent"}})
	require.NoError(t, err)

	if diff := cmp.Diff(before, standards); diff != "" {
		t.Errorf("standards changed (-before +after):\n%s", diff)
	}
}

func TestComputePerformance_Idempotent(t *testing.T) {
	opts := &Options{Direction: DirectionAuto, Levels: []string{"Slow", "Moderate", "Fast"}}

	first, err := ComputePerformance("45.2", timeStandards(), opts)
	require.NoError(t, err)
	second, err := ComputePerformance("45.2", timeStandards(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
}

func TestComputePerformance_AutoDirection(t *testing.T) {
	tests := []struct {
		name      string
		levels    []string
		metric    any
		wantDir   Direction
		wantLabel string
		wantDiag  bool
	}{
		{
			name:      "increasing cuts resolve to higher",
			levels:    []string{"Poor", "Average", "Good", "Excellent"},
			metric:    82,
			wantDir:   DirectionHigher,
			wantLabel: "Good",
		},
		{
			name:      "decreasing cuts resolve to lower",
			levels:    []string{"Excellent", "Good", "Average", "Poor"},
			metric:    82,
			wantDir:   DirectionLower,
			wantLabel: "Excellent",
		},
		{
			name:      "non-monotonic falls back to lower",
			levels:    []string{"Average", "Excellent", "Good"},
			metric:    82,
			wantDir:   DirectionLower,
			wantLabel: "Excellent",
			wantDiag:  true,
		},
		{
			name:      "missing levels falls back to lower",
			metric:    82,
			wantDir:   DirectionLower,
			wantLabel: "Excellent",
			wantDiag:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputePerformance(tt.metric, scoreStandards(), &Options{
				Direction: DirectionAuto,
				Levels:    tt.levels,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantDir, result.Direction)
			assert.Equal(t, tt.wantLabel, result.Label)
			if tt.wantDiag {
				require.NotEmpty(t, result.Validation.Errors)
				assert.True(t, strings.HasPrefix(result.Validation.Errors[0], "Cannot infer direction"))
			}
		})
	}
}

func TestComputePerformance_MatchedXorUnmatched(t *testing.T) {
	metrics := []any{-5, 0, 12.5, "49.99", "50", 74, 75, 89.999, 90, 1e9, "1:00", "nope"}

	for _, m := range metrics {
		for _, dir := range []Direction{DirectionHigher, DirectionLower} {
			result, err := ComputePerformance(m, scoreStandards(), &Options{Direction: dir})
			require.NoError(t, err)

			if result.Index >= 0 {
				assert.NotNil(t, result.Standard, "metric %v", m)
				assert.NotEqual(t, UnknownLabel, result.Label, "metric %v", m)
			} else {
				assert.Equal(t, -1, result.Index, "metric %v", m)
				assert.Equal(t, UnknownLabel, result.Label, "metric %v", m)
				assert.Nil(t, result.Standard, "metric %v", m)
			}

			if result.DiffToNext != nil {
				assert.NotNil(t, result.NextStandard, "metric %v", m)
				assert.NotNil(t, result.DiffToNextFormatted, "metric %v", m)
				assert.GreaterOrEqual(t, result.DiffToNext.Absolute, 0.0, "metric %v", m)
			}
			if result.NextStandard == nil {
				assert.Nil(t, result.DiffToNext, "metric %v", m)
				assert.Nil(t, result.DiffToNextFormatted, "metric %v", m)
			}
		}
	}
}

func TestComputePerformance_NamedNumericMetric(t *testing.T) {
	type seconds float64
	standards := []Standard{{Label: "Fast", Cut: 30}, {Label: "Slow", Cut: 60}}

	result, err := ComputePerformance(seconds(45), standards, nil)
	require.NoError(t, err)
	assert.Equal(t, "Slow", result.Label)
	assert.True(t, result.Validation.Valid)
	assert.Equal(t, "Fast", result.NextStandard.Label)

	result, err = ComputePerformance(45*time.Second, standards, nil)
	require.NoError(t, err)
	assert.Equal(t, "Slow", result.Label)
	assert.Empty(t, result.Validation.Errors)
}

func TestComputePerformance_InfiniteNextCutEncodesAsJSON(t *testing.T) {
	standards := []Standard{{Label: "Low", Cut: 10}, {Label: "Open", Cut: math.Inf(1)}}

	result, err := ComputePerformance(20, standards, &Options{Direction: DirectionHigher})
	require.NoError(t, err)
	require.NotNil(t, result.DiffToNext)
	assert.True(t, math.IsInf(result.DiffToNext.Absolute, 1))
	assert.True(t, math.IsNaN(result.DiffToNext.Relative))

	out, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		DiffToNext struct {
			Absolute string `json:"absolute"`
			Relative string `json:"relative"`
		} `json:"diffToNext"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "+Inf", decoded.DiffToNext.Absolute)
	assert.Equal(t, "NaN", decoded.DiffToNext.Relative)
}

func TestDiff_MarshalJSONFinite(t *testing.T) {
	out, err := json.Marshal(Diff{Absolute: 5.91, Relative: 1.6})
	require.NoError(t, err)
	assert.JSONEq(t, `{"absolute": 5.91, "relative": 1.6}`, string(out))
}

func TestValidationError_JoinsMessages(t *testing.T) {
	err := &ValidationError{Errors: []string{"one", "two", "three"}}
	assert.Equal(t, "one; two; three", err.Error())
}

func TestStandard_MarshalJSONNonFinite(t *testing.T) {
	out, err := json.Marshal(Standard{Label: "Slow", Cut: math.Inf(1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label": "Slow", "cut": "+Inf"}`, string(out))

	out, err = json.Marshal(Standard{Label: "Fast", Cut: 30.5, ID: "f"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label": "Fast", "cut": 30.5, "id": "f"}`, string(out))
}
