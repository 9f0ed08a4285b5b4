package todo

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// StorageKey is the key the task list is persisted under.
const StorageKey = "todos"

const listSchemaSource = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text", "completed"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"text": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var listSchema = jsonschema.MustCompileString("todos.schema.json", listSchemaSource)

// Encode returns the persisted form of l, a JSON array.
func Encode(l List) (string, error) {
	if l == nil {
		l = List{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses the persisted form. The document must match the list schema
// and ids must be unique.
func Decode(data string) (List, error) {
	var doc any
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if err := listSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	var l List
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[string]struct{}, len(l))
	for _, t := range l {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("decode tasks: duplicate id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if l == nil {
		l = List{}
	}
	return l, nil
}
