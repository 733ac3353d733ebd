package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// fragmentsSchema describes products_data.json
var fragmentsSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"page", "full_text"},
		"properties": map[string]any{
			"name":           map[string]any{"type": "string"},
			"price_text":     map[string]any{"type": "string"},
			"specifications": map[string]any{"type": "string"},
			"page":           map[string]any{"type": "integer", "minimum": 1},
			"full_text":      map[string]any{"type": "string"},
		},
	},
}

func validateFragments(data []byte) error {
	return validateAgainstSchema(fragmentsSchema, data)
}

// validateAgainstSchema validates data against schemaMap
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
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
