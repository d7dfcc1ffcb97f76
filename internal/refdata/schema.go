package refdata

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the reference data files. Validation runs at load time so a
// malformed table fails fast instead of silently degrading every match.
var fileSchemas = map[string]string{
	rolesFile: `{
		"type": "object",
		"additionalProperties": {
			"type": "object",
			"required": ["function", "skills", "platforms", "titles"],
			"properties": {
				"function": {"type": "string", "minLength": 1},
				"skills": {"type": "array", "items": {"type": "string"}},
				"platforms": {"type": "array", "items": {"type": "string"}},
				"titles": {"type": "array", "items": {"type": "string"}},
				"keywords": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["text", "weight"],
						"properties": {
							"text": {"type": "string", "minLength": 1},
							"weight": {"type": "integer", "minimum": 1}
						}
					}
				}
			}
		}
	}`,
	aliasesFile: `{
		"type": "object",
		"additionalProperties": {"type": "string", "minLength": 1}
	}`,
	industriesFile: `{
		"type": "object",
		"additionalProperties": {"type": "array", "items": {"type": "string"}}
	}`,
	gazetteerFile: `{
		"type": "object",
		"required": ["places"],
		"properties": {
			"places": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["city", "country"],
					"properties": {
						"city": {"type": "string", "minLength": 1},
						"region": {"type": "string"},
						"country": {"type": "string", "minLength": 1},
						"neighbors": {"type": "array", "items": {"type": "string"}}
					}
				}
			},
			"country_aliases": {
				"type": "object",
				"additionalProperties": {"type": "array", "items": {"type": "string"}}
			}
		}
	}`,
}

// SchemaError reports a data file that failed schema validation.
type SchemaError struct {
	File   string
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("refdata: %s failed validation:\n  %s", e.File, strings.Join(e.Errors, "\n  "))
}

func validateFile(name string, data []byte) error {
	schema, ok := fileSchemas[name]
	if !ok {
		return fmt.Errorf("refdata: no schema registered for %s", name)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("refdata: validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &SchemaError{File: name}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return verr
}
