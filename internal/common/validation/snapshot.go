// Package validation holds JSON-schema validation for exported snapshots.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the wire contract for exported/imported snapshots. It pins
// the envelope and the fields analytics depends on; optional entity fields are
// left open so older exports keep importing.
var snapshotSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"applications", "version", "timestamp"},
	"properties": map[string]interface{}{
		"version":   map[string]interface{}{"type": "string"},
		"timestamp": map[string]interface{}{"type": "string"},
		"applications": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "university", "program", "status", "createdAt", "updatedAt"},
				"properties": map[string]interface{}{
					"id": map[string]interface{}{"type": "string", "minLength": 1},
					"status": map[string]interface{}{
						"type": "string",
						"enum": []interface{}{
							"pending", "submitted", "under-review", "accepted",
							"rejected", "waitlisted", "dpwas", "waitlist",
						},
					},
					"university": map[string]interface{}{
						"type":     "object",
						"required": []interface{}{"id", "name", "location", "type"},
					},
					"program": map[string]interface{}{
						"type":     "object",
						"required": []interface{}{"id", "name", "universityId", "deadline", "applicationFee"},
					},
					"createdAt": map[string]interface{}{"type": "string"},
					"updatedAt": map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

// ValidateSnapshot checks raw snapshot bytes against the snapshot schema.
func ValidateSnapshot(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(snapshotSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("snapshot validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
