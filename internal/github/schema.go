package github

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// databaseSchema is deliberately loose: every list is optional (missing lists
// are repaired after decoding), but a present field must have the right shape.
// Anything else is treated as a corrupt file.
const databaseSchema = `{
	"type": "object",
	"properties": {
		"members":       {"type": "array", "items": {"type": "object"}},
		"pujas":         {"type": "array", "items": {"type": "object"}},
		"contributions": {"type": "array", "items": {"type": "object"}},
		"income":        {"type": "array", "items": {"type": "object"}},
		"expenses":      {"type": "array", "items": {"type": "object"}},
		"notices":       {"type": "array", "items": {"type": "object"}},
		"users":         {"type": "array", "items": {"type": "object"}},
		"lastUpdated":   {"type": "string"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(databaseSchema)

// validateDatabase checks a raw database file against the schema.
func validateDatabase(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("error validating database: %w", err)
	}
	if !result.Valid() {
		return fmt.Errorf("database file failed validation: %s", result.Errors()[0].String())
	}
	return nil
}
