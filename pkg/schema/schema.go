package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks command payloads against JSON Schema documents before
// they are dispatched to a device or bridge. Compiled schemas are cached
// keyed by their raw bytes, so repeated validations against the same
// document are cheap.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// Validate checks payload against doc. A nil, empty, or "{}" document
// means no constraints and always validates.
func (v *Validator) Validate(doc json.RawMessage, payload map[string]any) error {
	if len(doc) == 0 || string(doc) == "{}" || string(doc) == "null" {
		return nil
	}

	compiled, err := v.compile(doc)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	return compiled.Validate(payload)
}

func (v *Validator) compile(doc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(doc)

	v.mu.RLock()
	if s, ok := v.cache[key]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.cache[key]; ok {
		return s, nil
	}

	var docMap any
	if err := json.Unmarshal(doc, &docMap); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", docMap); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, err
	}

	v.cache[key] = compiled
	return compiled, nil
}
