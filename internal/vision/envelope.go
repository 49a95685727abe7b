// Package vision handles the hand-off boundary with the vision/OCR model.
// The extractor itself never calls a model; it parks jobs with an image
// sentinel or rasterized page paths, and results come back through here as a
// JSON envelope that gets validated and sanitized before touching the store.
package vision

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rpad300/godmode-docs/internal/extractor"
)

// Result is the parsed, sanitized vision-model output.
type Result struct {
	Text       string  `json:"text"`
	Model      string  `json:"model,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// vision result envelope, as a generic map.
func BuildResultJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"text":       map[string]any{"type": "string"},
			"model":      map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"text"},
	}
}

// ValidateResultJSON validates "data" against the vision envelope schema.
func ValidateResultJSON(data []byte) error {
	b, err := json.Marshal(BuildResultJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ParseResult validates the raw envelope, then strips known model preambles
// from the transcription.
func ParseResult(data []byte) (Result, error) {
	if err := ValidateResultJSON(data); err != nil {
		return Result{}, err
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("decode result: %w", err)
	}
	r.Text = extractor.CleanOCROutput(r.Text)
	return r, nil
}
