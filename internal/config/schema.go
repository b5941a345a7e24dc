// Package config loads and validates standards files.
package config

import (
	"fmt"
	"sort"

	"github.com/wesleyorama2/cutline/performance"
	"github.com/wesleyorama2/cutline/performance/transform"
)

// DefaultSetName names the top-level standards list when the file has no name.
const DefaultSetName = "default"

// StandardsFile is the root of a standards file.
//
// Example YAML:
//
//	name: "Girls 11-12 SCY"
//	direction: lower
//	levels: [B, BB, A, AA]
//	standards:
//	  - label: B
//	    cut: "33.19"
//	events:
//	  "500 Free":
//	    B: "7:04.39"
//	    BB: "6:28.19"
type StandardsFile struct {
	// Name of the standard set (for reporting)
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description of the standards (optional)
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Direction is "higher", "lower" or "auto" (default "lower")
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`

	// Levels lists labels from worst to best
	Levels []string `json:"levels,omitempty" yaml:"levels,omitempty"`

	// ValidationMode is "warn" or "throw" (default "warn")
	ValidationMode string `json:"validationMode,omitempty" yaml:"validationMode,omitempty"`

	// Standards is an explicit, ordered standards list
	Standards []performance.Standard `json:"standards,omitempty" yaml:"standards,omitempty"`

	// Events maps an event name to its label/cut table
	Events map[string]transform.Cuts `json:"events,omitempty" yaml:"events,omitempty"`
}

// StandardSet is one named list of standards ready for evaluation.
type StandardSet struct {
	Name      string
	Standards []performance.Standard
}

// Options converts the file-level settings into computation options.
func (f *StandardsFile) Options() (*performance.Options, error) {
	direction, err := performance.ParseDirection(f.Direction)
	if err != nil {
		return nil, err
	}
	mode, err := performance.ParseValidationMode(f.ValidationMode)
	if err != nil {
		return nil, err
	}

	return &performance.Options{
		Direction:      direction,
		Levels:         f.Levels,
		ValidationMode: mode,
	}, nil
}

// Sets returns every standard set in the file: the top-level list first
// (if any), then events sorted by name. Event tables are ordered by Levels
// when given, otherwise by their order in the file.
func (f *StandardsFile) Sets() []StandardSet {
	var sets []StandardSet

	if len(f.Standards) > 0 {
		name := f.Name
		if name == "" {
			name = DefaultSetName
		}
		sets = append(sets, StandardSet{Name: name, Standards: f.Standards})
	}

	names := make([]string, 0, len(f.Events))
	for name := range f.Events {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sets = append(sets, StandardSet{
			Name:      name,
			Standards: transform.Standards(f.Events[name], f.Levels),
		})
	}
	return sets
}

// Set returns the standard set called name. An empty name selects the only
// set in the file, and fails when there are several.
func (f *StandardsFile) Set(name string) (*StandardSet, error) {
	sets := f.Sets()

	if name == "" {
		if len(sets) == 1 {
			return &sets[0], nil
		}
		return nil, fmt.Errorf("file defines %d standard sets; choose one by name", len(sets))
	}

	for i := range sets {
		if sets[i].Name == name {
			return &sets[i], nil
		}
	}
	return nil, fmt.Errorf("standard set %q not found", name)
}
