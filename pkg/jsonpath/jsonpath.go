// Package jsonpath resolves a subset of JSONPath against JSON documents using gjson.
//
// Supported syntax: "$" (root), ".name", "['name']", "[\"name\"]" and "[n]".
// Names may contain spaces and dots, which matters for swim-standard documents
// keyed by event names such as "50 Free SCY".
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Get resolves path in json and returns the raw gjson result.
func Get(json string, path string) (gjson.Result, error) {
	if json == "" {
		return gjson.Result{}, fmt.Errorf("empty JSON string")
	}
	if !gjson.Valid(json) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}
	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}

	gpath, err := toGjsonPath(path)
	if err != nil {
		return gjson.Result{}, err
	}

	result := gjson.Get(json, gpath)
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// Extract resolves path in json and returns the value as a string.
// JSON null is returned as "null".
func Extract(json string, path string) (string, error) {
	result, err := Get(json, path)
	if err != nil {
		return "", err
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// toGjsonPath converts a JSONPath expression into a gjson path.
func toGjsonPath(path string) (string, error) {
	segments, err := split(path)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "@this", nil
	}

	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = escape(s)
	}
	return strings.Join(escaped, "."), nil
}

// split tokenizes a JSONPath expression into plain key/index segments.
func split(path string) ([]string, error) {
	p := strings.TrimSpace(path)
	p = strings.TrimPrefix(p, "$")

	var segments []string
	for len(p) > 0 {
		switch p[0] {
		case '.':
			p = p[1:]
			end := strings.IndexAny(p, ".[")
			if end < 0 {
				end = len(p)
			}
			if end == 0 {
				return nil, fmt.Errorf("empty segment in JSONPath %q", path)
			}
			segments = append(segments, p[:end])
			p = p[end:]

		case '[':
			body := strings.TrimLeft(p[1:], " ")

			// Quoted names may contain '.', ']' and spaces.
			if len(body) > 0 && (body[0] == '\'' || body[0] == '"') {
				quote := body[0]
				end := strings.IndexByte(body[1:], quote)
				if end < 0 {
					return nil, fmt.Errorf("unterminated quote in JSONPath %q", path)
				}
				name := body[1 : 1+end]
				rest := strings.TrimLeft(body[2+end:], " ")
				if !strings.HasPrefix(rest, "]") {
					return nil, fmt.Errorf("unterminated bracket in JSONPath %q", path)
				}
				segments = append(segments, name)
				p = rest[1:]
				continue
			}

			closeIdx := strings.IndexByte(p, ']')
			if closeIdx < 0 {
				return nil, fmt.Errorf("unterminated bracket in JSONPath %q", path)
			}
			inner := strings.TrimSpace(p[1:closeIdx])
			if _, err := strconv.Atoi(inner); err != nil {
				return nil, fmt.Errorf("invalid index %q in JSONPath %q", inner, path)
			}
			segments = append(segments, inner)
			p = p[closeIdx+1:]

		default:
			// Bare leading name without "$.": "users[0].name"
			end := strings.IndexAny(p, ".[")
			if end < 0 {
				end = len(p)
			}
			segments = append(segments, p[:end])
			p = p[end:]
		}
	}
	return segments, nil
}

// escape protects gjson's special characters inside a key.
func escape(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
