package schema

import (
	"encoding/json"
	"testing"
)

func lampStateSchema() json.RawMessage {
	return json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"on": {"type": "boolean"},
			"bri": {"type": "integer", "minimum": 0, "maximum": 254}
		},
		"additionalProperties": false
	}`)
}

func TestValidate_ValidPayload(t *testing.T) {
	v := NewValidator()
	schema := lampStateSchema()

	err := v.Validate(schema, map[string]any{
		"on":  true,
		"bri": float64(200),
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidate_OutOfRange(t *testing.T) {
	v := NewValidator()
	schema := lampStateSchema()

	err := v.Validate(schema, map[string]any{
		"bri": float64(300),
	})
	if err == nil {
		t.Error("expected validation error for out-of-range brightness")
	}
}

func TestValidate_UnknownProperty(t *testing.T) {
	v := NewValidator()
	schema := lampStateSchema()

	err := v.Validate(schema, map[string]any{
		"on":      true,
		"unknown": "value",
	})
	if err == nil {
		t.Error("expected validation error for unknown property")
	}
}

func TestValidate_WrongType(t *testing.T) {
	v := NewValidator()
	schema := lampStateSchema()

	err := v.Validate(schema, map[string]any{
		"on": "yes",
	})
	if err == nil {
		t.Error("expected validation error for wrong type")
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	// Empty schema means no validation
	err := v.Validate(json.RawMessage(`{}`), map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("empty schema should skip validation, got: %v", err)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(nil, map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()
	schema := lampStateSchema()

	// First call compiles
	err := v.Validate(schema, map[string]any{"on": true})
	if err != nil {
		t.Fatal(err)
	}

	// Second call should use cache
	err = v.Validate(schema, map[string]any{"on": false})
	if err != nil {
		t.Fatal(err)
	}

	v.mu.RLock()
	cacheSize := len(v.cache)
	v.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}
