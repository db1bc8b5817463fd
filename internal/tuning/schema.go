package tuning

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// overrideSchema constrains tuning override files. Every section and field is
// optional; present fields must be well-typed and in range so a typo cannot
// silently zero a weight table.
var overrideSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"mastery": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"learning_rate":     numberSchema(0, 1),
				"delta_floor":       numberSchema(-1, 0),
				"delta_ceil":        numberSchema(0, 1),
				"pass_threshold":    numberSchema(0, 1),
				"stability_gain":    numberSchema(0, 1),
				"stability_loss":    numberSchema(0, 1),
				"stability_floor":   numberSchema(0, 5),
				"stability_ceil":    numberSchema(0, 5),
				"initial_stability": numberSchema(0, 5),
				"format_weights":    weightTableSchema(),
				"mode_weights":      weightTableSchema(),
				"difficulty_step":   numberSchema(0, 1),
				"prior_per_level":   numberSchema(0, 0.2),
				"review_scale_days": numberSchema(0, 60),
				"review_max_days":   integerSchema(1, 365),
			},
			"additionalProperties": false,
		},
		"gate": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"mastery_threshold":        numberSchema(0, 1),
				"stability_threshold":      numberSchema(0, 5),
				"required_timed_passes":    integerSchema(1, 10),
				"min_hours_between_passes": numberSchema(0, 720),
				"top_error_tags":           integerSchema(0, 20),
			},
			"additionalProperties": false,
		},
		"debt": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"never_practiced_days": numberSchema(0, 3650),
			},
			"additionalProperties": false,
		},
		"planner": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"learning_gain_weight":     numberSchema(0, 1),
				"retention_gain_weight":    numberSchema(0, 1),
				"exam_roi_weight":          numberSchema(0, 1),
				"error_closure_weight":     numberSchema(0, 1),
				"retention_base":           numberSchema(0, 1),
				"overdue_saturation_days":  numberSchema(0, 365),
				"critical_mode_boost":      numberSchema(0, 1),
				"critical_weight_boost":    numberSchema(0, 1),
				"distant_foundation_boost": numberSchema(0, 1),
				"max_tasks_per_skill":      integerSchema(1, 20),
			},
			"additionalProperties": false,
		},
		"srs": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"initial_ease":      numberSchema(1.3, 5),
				"min_ease":          numberSchema(1, 5),
				"correct_threshold": integerSchema(0, 5),
				"first_interval":    integerSchema(1, 30),
				"second_interval":   integerSchema(1, 60),
				"max_interval_days": integerSchema(1, 3650),
			},
			"additionalProperties": false,
		},
		"phase": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"distant_min_days":  integerSchema(1, 3650),
				"critical_max_days": integerSchema(0, 365),
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
}

func numberSchema(min, max float64) map[string]any {
	return map[string]any{"type": "number", "minimum": min, "maximum": max}
}

func integerSchema(min, max int) map[string]any {
	return map[string]any{"type": "integer", "minimum": min, "maximum": max}
}

func weightTableSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": numberSchema(0, 5),
	}
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateOverride checks raw JSON against the override schema.
func validateOverride(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("tuning file is not valid JSON: %w", err)
	}

	compileOnce.Do(func() {
		defBytes, err := json.Marshal(overrideSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal tuning schema: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse tuning schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://tuning-override.json"
		if err := c.AddResource(url, defParsed); err != nil {
			compileErr = fmt.Errorf("add tuning schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	if compileErr != nil {
		return compileErr
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("tuning file rejected by schema: %w", err)
	}
	return nil
}
