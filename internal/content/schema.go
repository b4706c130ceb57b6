package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchema is the contract a content record must satisfy before the
// engine will build questions from it. Records are authored upstream by a
// generation pipeline, so malformed entries do occur.
const recordSchema = `{
	"type": "object",
	"required": ["word", "word_root", "definition"],
	"properties": {
		"word": {"type": "string", "minLength": 1},
		"word_root": {"type": "string"},
		"definition": {
			"type": "object",
			"required": ["cn"],
			"properties": {
				"en": {"type": "string"},
				"cn": {"type": "string", "minLength": 1}
			}
		},
		"sample_sentences": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["sentence"],
				"properties": {
					"sentence": {"type": "string"},
					"translation": {"type": "string"}
				}
			}
		},
		"exercises": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type"],
				"properties": {
					"type": {"type": "string"},
					"sentence": {"type": "string"},
					"sentence_answer": {"type": ["string", "object"]},
					"sentence_answer_cn": {"type": ["string", "object"]}
				}
			}
		}
	}
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(recordSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse record schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://word-item.json", parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile("schema://word-item.json")
	})
	return schema, schemaErr
}

// ValidateRecord checks one raw content record against the record schema.
func ValidateRecord(raw json.RawMessage) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
