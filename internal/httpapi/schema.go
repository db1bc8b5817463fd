package httpapi

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// gradingSchema constrains the attempt payload the grading service posts.
// Types and ranges are enforced here; format, mode and difficulty values are
// deliberately left open because the engine falls back to neutral weights
// for unknown ones instead of rejecting the attempt.
var gradingSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"item_id": map[string]any{"type": "string", "minLength": 1},
		"format":  map[string]any{"type": "string"},
		"mode":    map[string]any{"type": "string"},
		"difficulty": map[string]any{
			"type":        "integer",
			"description": "Item difficulty tier, normally 1-5.",
		},
		"score_norm": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		"error_tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"skills": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":             "number",
				"exclusiveMinimum": 0,
				"maximum":          1,
			},
			"description": "Skill ID to coverage weight. Omit to use the item's catalog mapping.",
		},
		"occurred_at": map[string]any{"type": "string", "format": "date-time"},
	},
	"required":             []any{"item_id", "format", "mode", "score_norm"},
	"additionalProperties": false,
}

var (
	gradingOnce     sync.Once
	gradingCompiled *jsonschema.Schema
	gradingErr      error
)

// validateGrading checks a raw attempt body against the grading schema.
func validateGrading(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}

	gradingOnce.Do(func() {
		defBytes, err := json.Marshal(gradingSchema)
		if err != nil {
			gradingErr = fmt.Errorf("marshal grading schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			gradingErr = fmt.Errorf("parse grading schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://grading-payload.json"
		if err := c.AddResource(url, defParsed); err != nil {
			gradingErr = fmt.Errorf("add grading schema resource: %w", err)
			return
		}
		gradingCompiled, gradingErr = c.Compile(url)
	})
	if gradingErr != nil {
		return gradingErr
	}

	if err := gradingCompiled.Validate(parsed); err != nil {
		return fmt.Errorf("payload rejected by schema: %w", err)
	}
	return nil
}
