package output

import (
	"github.com/wesleyorama2/cutline/internal/summary"
	"github.com/wesleyorama2/cutline/performance"
)

// Evaluation is one metric evaluated against one standard set.
type Evaluation struct {
	Set    string              `json:"set" yaml:"set"`
	Metric string              `json:"metric" yaml:"metric"`
	Result *performance.Result `json:"result,omitempty" yaml:"result,omitempty"`

	// Error is set when the computation aborted (throw mode)
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the output of a compute run.
type Report struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Evaluations []Evaluation     `json:"evaluations" yaml:"evaluations"`
	Summary     *summary.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// SetValidation is the validation outcome of one standard set.
type SetValidation struct {
	Name       string                 `json:"name" yaml:"name"`
	Direction  performance.Direction  `json:"direction" yaml:"direction"`
	Validation performance.Validation `json:"validation" yaml:"validation"`
}

// ValidationReport is the output of a validate run.
type ValidationReport struct {
	File string          `json:"file" yaml:"file"`
	Sets []SetValidation `json:"sets" yaml:"sets"`

	// FileErrors holds load/schema errors; Sets is empty when set
	FileErrors []string `json:"fileErrors,omitempty" yaml:"fileErrors,omitempty"`
}

// Valid reports whether the file loaded and every set validated cleanly.
func (v *ValidationReport) Valid() bool {
	if len(v.FileErrors) > 0 {
		return false
	}
	for _, s := range v.Sets {
		if !s.Validation.Valid {
			return false
		}
	}
	return true
}
