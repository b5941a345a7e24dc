package performance

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type seconds float64

type lapCount uint8

type clock string

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"hours minutes seconds", "1:02:03", 3723},
		{"hours with fraction", "1:02:03.5", 3723.5},
		{"long hours", "12:00:00", 43200},
		{"minutes seconds", "2:30.00", 150},
		{"minutes seconds no fraction", "0:59", 59},
		{"long fraction", "1:05.391", 65.391},
		{"many minutes", "125:00", 7500},
		{"plain decimal", "75.5", 75.5},
		{"negative integer", "-3", -3},
		{"explicit plus", "+4", 4},
		{"surrounding whitespace", "  29.99 ", 29.99},
		{"scientific notation falls back", "1e3", 1000},
		{"int passes through", 82, 82},
		{"int64 passes through", int64(7), 7},
		{"float passes through", 3661.0, 3661},
		{"float32 passes through", float32(1.5), 1.5},
		{"infinity passes through", math.Inf(1), math.Inf(1)},
		{"json number", json.Number("1:00"), 60},
		{"named float passes through", seconds(45), 45},
		{"named uint passes through", lapCount(20), 20},
		{"named string is parsed", clock("1:05.39"), 65.39},
		{"duration in seconds", 45 * time.Second, 45},
		{"fractional duration", 1500 * time.Millisecond, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDuration_Unparsable(t *testing.T) {
	inputs := []any{
		"",
		"abc",
		"1:60",
		"1:5",
		"1:00:60",
		"1:2:03",
		"Infinity",
		"NaN",
		"1e400",
		nil,
		true,
		[]string{"1"},
	}

	for _, in := range inputs {
		got, err := ParseDuration(in)
		assert.NoError(t, err, "input %#v", in)
		assert.True(t, math.IsNaN(got), "input %#v parsed to %v", in, got)
	}
}

func TestSafeParse(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		f, diag := safeParse(ParseDuration, "1:00")
		assert.Equal(t, 60.0, f)
		assert.Empty(t, diag)
	})

	t.Run("error", func(t *testing.T) {
		f, diag := safeParse(func(any) (float64, error) { return 1, assert.AnError }, "x")
		assert.True(t, math.IsNaN(f))
		assert.Equal(t, "Parser error: "+assert.AnError.Error(), diag)
	})

	t.Run("panic", func(t *testing.T) {
		f, diag := safeParse(func(any) (float64, error) { panic("bad input") }, "x")
		assert.True(t, math.IsNaN(f))
		assert.Equal(t, "Parser error: bad input", diag)
	})
}
