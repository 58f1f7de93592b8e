package llm

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// draftsSchema is the JSON Schema every drafting response must satisfy before
// anything is persisted.
const draftsSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["variant", "content"],
    "properties": {
      "variant": {"type": "string"},
      "content": {"type": "string", "minLength": 1}
    },
    "additionalProperties": false
  }
}`

// ValidateDraftsJSON checks a raw drafting response against the drafts schema
func ValidateDraftsJSON(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(draftsSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate drafts: %w", err)
	}
	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("drafts failed schema validation: %s", strings.Join(reasons, "; "))
}
