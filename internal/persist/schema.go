package persist

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

const itemsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["value", "done"],
    "properties": {
      "value": {"type": "string", "minLength": 1},
      "done":  {"type": "boolean"}
    }
  }
}`

var itemsSchema = jsonschema.MustCompileString("items.schema.json", itemsSchemaJSON)

// decode parses a stored payload and checks it against itemsSchema.
func decode(b []byte) ([]model.Item, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := itemsSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return model.Decode(b)
}
