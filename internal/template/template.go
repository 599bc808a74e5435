// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template loads the award search request template and merges the
// run-time search parameters into it.
//
// The template is an opaque JSON object owned by the user: only
// filters.keywords, filters.agencies, and limit are written by this package.
// Every other field is passed through to the award search API unchanged.
package template

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/award-enricher/pkg/types"
)

//go:embed default.json5
var defaultTemplate []byte

// schema constrains the fields this package writes or that the award API
// rejects outright when mistyped. Additional fields are allowed.
const schema = `{
  "type": "object",
  "properties": {
    "filters": {"type": "object"},
    "fields":  {"type": "array", "items": {"type": "string"}},
    "limit":   {"type": "integer", "minimum": 1},
    "page":    {"type": "integer", "minimum": 1}
  }
}`

// Template is a decoded request template.
type Template map[string]any

// Default returns the built-in template.
func Default() (Template, error) {
	return decode(defaultTemplate, ".json5")
}

// Load reads a template from path. JSON and JSON5 (.json, .json5) and YAML
// (.yaml, .yml) are supported. An empty path selects the built-in template.
func Load(path string) (Template, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request template: %w", err)
	}
	t, err := decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("request template %s: %w", path, err)
	}
	return t, nil
}

func decode(data []byte, ext string) (Template, error) {
	var t Template
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json", ".json5", "":
		if err := json5.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported template format %q: use .json, .json5, .yaml, or .yml", ext)
	}
	if t == nil {
		t = Template{}
	}
	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks t against the template schema.
func Validate(t Template) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(map[string]any(t)),
	)
	if err != nil {
		return fmt.Errorf("validating request template: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid request template: %s", strings.Join(msgs, "; "))
}

// Body returns a new request body: a deep copy of t with the keywords,
// limit, and (when non-empty) agencies of req written in. t is not modified.
func (t Template) Body(req types.SearchRequest) (map[string]any, error) {
	body := deepCopy(map[string]any(t)).(map[string]any)
	if _, ok := body["filters"].(map[string]any); !ok {
		body["filters"] = map[string]any{}
	}

	filters := map[string]any{"keywords": req.Keywords}
	if len(req.Agencies) > 0 {
		filters["agencies"] = req.Agencies
	}
	overrides := map[string]any{
		"filters": filters,
		"limit":   req.Limit,
	}
	if err := mergo.Merge(&body, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merging search parameters into template: %w", err)
	}
	return body, nil
}

// deepCopy copies the maps and slices produced by JSON and YAML decoding.
func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
