// Package schema compiles and applies JSON Schemas to raw JSON documents.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named, compiled JSON Schema.
type Schema struct {
	Name     string
	compiled *jsonschema.Schema
}

// ValidationError reports a document that failed to parse or validate.
type ValidationError struct {
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// cache holds compiled schemas by name.
var cache sync.Map // map[string]*Schema

// Compile returns the compiled schema for name, compiling definition on first use.
func Compile(name string, definition []byte) (*Schema, error) {
	if cached, ok := cache.Load(name); ok {
		return cached.(*Schema), nil
	}

	var defParsed any
	if err := json.Unmarshal(definition, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", name, err)
	}

	s := &Schema{Name: name, compiled: compiled}
	actual, _ := cache.LoadOrStore(name, s)
	return actual.(*Schema), nil
}

// MustCompile is like Compile but panics on error. Use for embedded schemas.
func MustCompile(name string, definition []byte) *Schema {
	s, err := Compile(name, definition)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks raw JSON against the schema.
// Returns *ValidationError when raw is not JSON or does not conform.
func (s *Schema) Validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{
			Schema: s.Name,
			Err:    fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if err := s.compiled.Validate(parsed); err != nil {
		return &ValidationError{
			Schema: s.Name,
			Err:    fmt.Errorf("schema validation failed: %w", err),
		}
	}
	return nil
}
