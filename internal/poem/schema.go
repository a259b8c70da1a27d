package poem

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const corpusSchemaURL = "schema://karuta/corpus.json"

// corpusSchema describes the on-disk corpus: a non-empty array of poem
// objects, each carrying the three verse fields and an id or a number.
var corpusSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"upper", "lower", "author"},
		"anyOf": []any{
			map[string]any{"required": []any{"number"}},
			map[string]any{"required": []any{"id"}},
		},
		"properties": map[string]any{
			"number":      map[string]any{"type": "integer"},
			"id":          map[string]any{"type": "integer"},
			"upper":       map[string]any{"type": "string"},
			"lower":       map[string]any{"type": "string"},
			"author":      map[string]any{"type": "string"},
			"reading":     map[string]any{"type": "string"},
			"translation": map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"season":      map[string]any{"type": "string"},
			"theme":       map[string]any{"type": "string"},
			"technique":   map[string]any{"type": "string"},
			"source":      map[string]any{"type": "string"},
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledCorpusSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go literals.
		raw, err := json.Marshal(corpusSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(corpusSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(corpusSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateSchema checks a decoded JSON document against the corpus schema.
func validateSchema(doc any) error {
	s, err := compiledCorpusSchema()
	if err != nil {
		return fmt.Errorf("compile corpus schema: %w", err)
	}
	return s.Validate(doc)
}
