package snapshot

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidationError indicates a snapshot file that is not valid JSON or
// does not conform to its schema.
type ValidationError struct {
	Path   string
	Schema string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s snapshot %s: %v", e.Schema, e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// validate checks raw against the named embedded schema.
func validate(name, path string, raw []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ValidationError{Path: path, Schema: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(name)
	if err != nil {
		return err
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Path: path, Schema: name, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("read schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
