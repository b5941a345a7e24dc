// Package transform turns label→cut tables into ordered performance standards.
//
// Transformations perform no validation and pass cuts through untouched
// (typically as strings); parsing and checking are left to
// performance.ComputePerformance.
package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/cutline/performance"
	"github.com/wesleyorama2/cutline/pkg/jsonpath"
)

// Pair is a single label and its cut.
type Pair struct {
	Label string
	Cut   any
}

// Cuts is a label→cut table that remembers document order when decoded from
// YAML or JSON.
type Cuts []Pair

// Get returns the cut of the first pair labelled label.
func (c Cuts) Get(label string) (any, bool) {
	for _, p := range c {
		if p.Label == label {
			return p.Cut, true
		}
	}
	return nil, false
}

// Labels returns the labels in table order.
func (c Cuts) Labels() []string {
	labels := make([]string, len(c))
	for i, p := range c {
		labels[i] = p.Label
	}
	return labels
}

// UnmarshalYAML implements yaml.Unmarshaler for mapping nodes.
func (c *Cuts) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: cut table must be a mapping", node.Line)
	}

	out := make(Cuts, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var label string
		if err := node.Content[i].Decode(&label); err != nil {
			return fmt.Errorf("line %d: invalid label: %w", node.Content[i].Line, err)
		}
		var cut any
		if err := node.Content[i+1].Decode(&cut); err != nil {
			return fmt.Errorf("line %d: invalid cut for %q: %w", node.Content[i+1].Line, label, err)
		}
		out = append(out, Pair{Label: label, Cut: cut})
	}
	*c = out
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for JSON objects.
func (c *Cuts) UnmarshalJSON(data []byte) error {
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return fmt.Errorf("cut table must be a JSON object")
	}
	*c = fromObject(result)
	return nil
}

// MarshalYAML emits the table as an ordered mapping.
func (c Cuts) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range c {
		var value yaml.Node
		if err := value.Encode(p.Cut); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Label},
			&value,
		)
	}
	return node, nil
}

// MarshalJSON emits the table as a JSON object in table order.
func (c Cuts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.Cut)
		if err != nil {
			return nil, fmt.Errorf("cut for %q: %w", p.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func fromObject(obj gjson.Result) Cuts {
	var out Cuts
	obj.ForEach(func(key, value gjson.Result) bool {
		out = append(out, Pair{Label: key.String(), Cut: value.Value()})
		return true
	})
	return out
}

// Standards builds standards from cuts in the given level order. With no
// order, the table's own order is used. A level missing from the table is
// kept with a nil cut so the core reports it.
func Standards(cuts Cuts, order []string) []performance.Standard {
	if len(order) == 0 {
		order = cuts.Labels()
	}

	standards := make([]performance.Standard, 0, len(order))
	for _, label := range order {
		cut, _ := cuts.Get(label)
		standards = append(standards, performance.Standard{Label: label, Cut: cut})
	}
	return standards
}

// FromMap builds standards from a Go map. Go maps are unordered, so without
// an explicit order the labels are sorted.
func FromMap(m map[string]any, order []string) []performance.Standard {
	if len(order) == 0 {
		order = make([]string, 0, len(m))
		for label := range m {
			order = append(order, label)
		}
		sort.Strings(order)
	}

	standards := make([]performance.Standard, 0, len(order))
	for _, label := range order {
		standards = append(standards, performance.Standard{Label: label, Cut: m[label]})
	}
	return standards
}

// FromJSON extracts the cut table at path (JSONPath, e.g. `$.SCY["50 Free"]`)
// from a swim-standards document and builds standards from it.
func FromJSON(doc []byte, path string, order []string) ([]performance.Standard, error) {
	if path == "" {
		path = "$"
	}

	table, err := jsonpath.Get(string(doc), path)
	if err != nil {
		return nil, err
	}
	if !table.IsObject() {
		return nil, fmt.Errorf("value at %s is not an object of label/cut pairs", path)
	}
	return Standards(fromObject(table), order), nil
}

// Events lists the keys of the object at path, in document order. It is used
// to enumerate the events of a swim-standards document.
func Events(doc []byte, path string) ([]string, error) {
	if path == "" {
		path = "$"
	}

	obj, err := jsonpath.Get(string(doc), path)
	if err != nil {
		return nil, err
	}
	if !obj.IsObject() {
		return nil, fmt.Errorf("value at %s is not an object", path)
	}
	return fromObject(obj).Labels(), nil
}
