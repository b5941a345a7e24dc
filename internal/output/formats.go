package output

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
	// FormatJUnit outputs in JUnit XML format (for CI/CD integration)
	FormatJUnit OutputFormat = "junit"
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML, FormatJUnit:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, yaml or junit)", s)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatReport(r *Report) (string, error)
	FormatValidation(v *ValidationReport) (string, error)
}

// GetFormatter returns a formatter for the specified format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatJUnit:
		return &JUnitFormatter{SuiteName: "cutline"}
	default:
		return NewFormatter(verbose, noColor)
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	return string(out) + "\n", nil
}

// FormatReport formats a compute report as JSON
func (f *JSONFormatter) FormatReport(r *Report) (string, error) {
	return f.marshal(r)
}

// FormatValidation formats a validation report as JSON
func (f *JSONFormatter) FormatValidation(v *ValidationReport) (string, error) {
	return f.marshal(v)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

func (f *YAMLFormatter) marshal(v any) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML output: %w", err)
	}
	return string(out), nil
}

// FormatReport formats a compute report as YAML
func (f *YAMLFormatter) FormatReport(r *Report) (string, error) {
	return f.marshal(r)
}

// FormatValidation formats a validation report as YAML
func (f *YAMLFormatter) FormatValidation(v *ValidationReport) (string, error) {
	return f.marshal(v)
}

// JUnit XML structures
type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// JUnitFormatter formats output as JUnit XML. An evaluation fails when it
// aborted or met no standard; a validation set fails when it has diagnostics.
type JUnitFormatter struct {
	SuiteName string
}

func (f *JUnitFormatter) marshal(suite junitTestSuite) (string, error) {
	out, err := xml.MarshalIndent(junitTestSuites{Suites: []junitTestSuite{suite}}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JUnit output: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}

// FormatReport formats a compute report as JUnit XML
func (f *JUnitFormatter) FormatReport(r *Report) (string, error) {
	suite := junitTestSuite{Name: f.suiteName(r.Name)}

	for _, e := range r.Evaluations {
		tc := junitTestCase{
			Name:      e.Metric,
			ClassName: e.Set,
		}

		switch {
		case e.Error != "":
			tc.Failure = &junitFailure{Message: "computation aborted", Type: "ValidationError", Content: e.Error}
		case e.Result != nil && !e.Result.Matched():
			tc.Failure = &junitFailure{Message: "no standard met", Type: "Unmatched", Content: describeNext(e.Result)}
		case e.Result != nil:
			tc.SystemOut = fmt.Sprintf("%s; %s", e.Result.Label, describeNext(e.Result))
		}
		if e.Result != nil && len(e.Result.Validation.Errors) > 0 {
			tc.SystemOut = strings.TrimPrefix(tc.SystemOut+"\n"+strings.Join(e.Result.Validation.Errors, "\n"), "\n")
		}

		if tc.Failure != nil {
			suite.Failures++
		}
		suite.Tests++
		suite.Cases = append(suite.Cases, tc)
	}

	return f.marshal(suite)
}

// FormatValidation formats a validation report as JUnit XML
func (f *JUnitFormatter) FormatValidation(v *ValidationReport) (string, error) {
	suite := junitTestSuite{Name: f.suiteName(v.File)}

	if len(v.FileErrors) > 0 {
		suite.Tests++
		suite.Failures++
		suite.Cases = append(suite.Cases, junitTestCase{
			Name:      v.File,
			ClassName: "file",
			Failure:   &junitFailure{Message: "invalid standards file", Type: "FileError", Content: strings.Join(v.FileErrors, "\n")},
		})
	}

	for _, s := range v.Sets {
		tc := junitTestCase{Name: s.Name, ClassName: v.File}
		if !s.Validation.Valid {
			tc.Failure = &junitFailure{
				Message: fmt.Sprintf("%d diagnostics", len(s.Validation.Errors)),
				Type:    "Diagnostics",
				Content: strings.Join(s.Validation.Errors, "\n"),
			}
			suite.Failures++
		}
		suite.Tests++
		suite.Cases = append(suite.Cases, tc)
	}

	return f.marshal(suite)
}

func (f *JUnitFormatter) suiteName(name string) string {
	if name != "" {
		return name
	}
	return f.SuiteName
}
