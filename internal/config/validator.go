package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/cutline/performance"
)

// ValidationError represents a standards file validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate checks the settings the schema cannot express. Problems with the
// standards themselves (duplicates, ordering, unparsable cuts) are left to
// the computation's own diagnostics.
//
// Returns nil if valid, or a *ValidationErrors containing all problems.
func (f *StandardsFile) Validate() error {
	errs := &ValidationErrors{}

	if _, err := performance.ParseDirection(f.Direction); err != nil {
		errs.Add("direction", err.Error())
	}
	if _, err := performance.ParseValidationMode(f.ValidationMode); err != nil {
		errs.Add("validationMode", err.Error())
	}

	for i, level := range f.Levels {
		if strings.TrimSpace(level) == "" {
			errs.Add(fmt.Sprintf("levels[%d]", i), "level label cannot be empty")
		}
	}

	if len(f.Standards) == 0 && len(f.Events) == 0 {
		errs.Add("standards", "either standards or events is required")
	}

	for i, s := range f.Standards {
		if strings.TrimSpace(s.Label) == "" {
			errs.Add(fmt.Sprintf("standards[%d].label", i), "label is required")
		}
	}

	for name, cuts := range f.Events {
		if strings.TrimSpace(name) == "" {
			errs.Add("events", "event name cannot be empty")
		}
		if len(cuts) == 0 {
			errs.Add(fmt.Sprintf("events.%s", name), "at least one cut is required")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
