package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quizzer-bank.json"

// documentSchema describes a bank document. Index bounds against each
// question's own options can't be expressed here; validateDocument covers them.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "string",
			"pattern": "^v[0-9]+\\.[0-9]+\\.[0-9]+$",
		},
		"subjects": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"prompt": map[string]any{"type": "string", "minLength": 1},
								"options": map[string]any{
									"type":     "array",
									"minItems": 2,
									"items":    map[string]any{"type": "string"},
								},
								"correctOptionIndex": map[string]any{
									"type":    "integer",
									"minimum": 0,
								},
							},
							"required":             []any{"prompt", "options", "correctOptionIndex"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "title", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"version", "subjects"},
	"additionalProperties": false,
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// AddResource expects values shaped as encoding/json decodes them.
	raw, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validateSchema checks a raw JSON bank document against documentSchema.
func validateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
