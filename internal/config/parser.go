package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cutline/pkg/jsonschema"
)

//go:embed standards.schema.json
var standardsSchemaJSON string

var standardsSchema = jsonschema.MustCompile("standards.schema.json", standardsSchemaJSON)

// Load reads, parses and validates a standards file.
//
// Returns the parsed StandardsFile, or an error that is a *ValidationErrors
// when the file is well-formed but invalid.
func Load(path string) (*StandardsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read standards file: %w", err)
	}

	file, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}

// Parse parses standards file data and checks it against the schema.
//
// The format is determined by the file extension in path:
//   - .json -> JSON
//   - .yaml, .yml, anything else -> YAML
func Parse(data []byte, path string) (*StandardsFile, error) {
	isJSON := strings.ToLower(filepath.Ext(path)) == ".json"

	var doc any
	if isJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON standards file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML standards file: %w", err)
		}
	}

	if schemaErrs := standardsSchema.Validate(doc); len(schemaErrs) > 0 {
		errs := &ValidationErrors{}
		for _, e := range schemaErrs {
			errs.Add("schema", e.Error())
		}
		return nil, errs
	}

	var file StandardsFile
	if isJSON {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to decode standards file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to decode standards file: %w", err)
		}
	}
	return &file, nil
}
