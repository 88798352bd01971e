package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// Type defines the contract for field decoding.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "uint").
	Name() string
	// Decode converts a raw JSON value into the Go value of this type.
	Decode(raw json.RawMessage) (any, error)
	// JSONSchema describes the type for tool listings.
	JSONSchema() map[string]any
}

// --- Built-in Type Implementations ---

// ObjectType accepts any JSON object and returns it untouched as json.RawMessage.
type ObjectType struct{}

func (t *ObjectType) Name() string { return "object" }

func (t *ObjectType) Decode(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("expected object, got %s", kindOf(raw))
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out, nil
}

func (t *ObjectType) JSONSchema() map[string]any {
	return map[string]any{"type": "object"}
}

// StringType accepts JSON strings.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Decode(raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("expected string, got %s", kindOf(raw))
	}
	return s, nil
}

func (t *StringType) JSONSchema() map[string]any {
	return map[string]any{"type": "string"}
}

// UintType accepts non-negative whole JSON numbers that fit in a uint64.
// Exponent forms such as 1e5 are accepted when they denote a whole number.
type UintType struct{}

func (t *UintType) Name() string { return "uint" }

func (t *UintType) Decode(raw json.RawMessage) (any, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, fmt.Errorf("expected number, got %s", kindOf(raw))
	}

	if u, err := strconv.ParseUint(num.String(), 10, 64); err == nil {
		return u, nil
	}

	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("number %s is out of range", num)
	}
	switch {
	case f < 0:
		return nil, fmt.Errorf("must not be negative, got %s", num)
	case f != math.Trunc(f):
		return nil, fmt.Errorf("must be a whole number, got %s", num)
	case f >= math.MaxUint64:
		return nil, fmt.Errorf("number %s is out of range", num)
	}
	return uint64(f), nil
}

func (t *UintType) JSONSchema() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

// AddressType accepts base58 strings that parse as a Solana public key.
type AddressType struct{}

func (t *AddressType) Name() string { return "address" }

func (t *AddressType) Decode(raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("expected address string, got %s", kindOf(raw))
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return key, nil
}

func (t *AddressType) JSONSchema() map[string]any {
	return map[string]any{"type": "string", "description": "base58-encoded public key"}
}

// --- Factory Functions ---

// Object creates a verbatim JSON object type.
func Object() Type { return &ObjectType{} }

// String creates a string type.
func String() Type { return &StringType{} }

// Uint creates a non-negative integer type.
func Uint() Type { return &UintType{} }

// Address creates a Solana address type.
func Address() Type { return &AddressType{} }

func decodeAny(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("malformed value: %w", err)
	}
	return v, nil
}

// kindOf names the JSON kind of raw for error messages.
func kindOf(raw json.RawMessage) string {
	v, err := decodeAny(raw)
	if err != nil {
		return "malformed value"
	}
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
