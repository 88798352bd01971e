package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/gagliardetto/solana-go"
)

// Schema is a map of field names to their expected types. Every field is required.
type Schema map[string]Type

// Fields holds the decoded values of a validated input, keyed by field name.
type Fields map[string]any

// Field names used by the actions.
const (
	FieldQuoteReq    = "quoteReq"
	FieldPriorityFee = "priorityFee"
	FieldPayer       = "payer"
	FieldMint        = "mint"
)

var (
	// FeePaymentSchema describes the input of the fee payment action.
	FeePaymentSchema = Schema{
		FieldQuoteReq:    Object(),
		FieldPriorityFee: Uint(),
	}

	// FeeClaimSchema describes the input of the fee claim action.
	FeeClaimSchema = Schema{
		FieldPayer:       Address(),
		FieldMint:        Address(),
		FieldPriorityFee: Uint(),
	}
)

// Keys returns the field names in sorted order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONSchema renders the schema as a JSON Schema object.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s))
	for name, typ := range s {
		props[name] = typ.JSONSchema()
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   s.Keys(),
	}
}

// Decode parses input as a JSON object and decodes every schema field.
// Unknown fields are ignored. A null value counts as missing.
// Field failures are reported together as an *AggregateError.
func Decode(schema Schema, input string) (Fields, error) {
	if strings.TrimSpace(input) == "" {
		return nil, domain.ErrEmptyInput
	}

	raw, err := parseObject([]byte(input))
	if err != nil {
		return nil, err
	}

	var errs []error
	fields := make(Fields, len(schema))
	for _, name := range schema.Keys() {
		value, ok := raw[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			errs = append(errs, &ValidationError{Key: name, Reason: "required"})
			continue
		}

		decoded, err := schema[name].Decode(value)
		if err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error()})
			continue
		}
		fields[name] = decoded
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return fields, nil
}

func parseObject(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		var probe any
		err := json.Unmarshal(trimmed, &probe)
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("invalid JSON input: expected an object, got %s", kindOf(trimmed))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	return raw, nil
}

// DecodeFeePayment validates the input of the fee payment action.
func DecodeFeePayment(input string) (domain.FeePaymentRequest, error) {
	fields, err := Decode(FeePaymentSchema, input)
	if err != nil {
		return domain.FeePaymentRequest{}, err
	}
	return domain.FeePaymentRequest{
		QuoteReq:    fields[FieldQuoteReq].(json.RawMessage),
		PriorityFee: fields[FieldPriorityFee].(uint64),
	}, nil
}

// DecodeFeeClaim validates the input of the fee claim action.
// Both addresses are parsed here, before any client call.
func DecodeFeeClaim(input string) (domain.FeeClaimRequest, error) {
	fields, err := Decode(FeeClaimSchema, input)
	if err != nil {
		return domain.FeeClaimRequest{}, err
	}
	return domain.FeeClaimRequest{
		Payer:       fields[FieldPayer].(solana.PublicKey),
		Mint:        fields[FieldMint].(solana.PublicKey),
		PriorityFee: fields[FieldPriorityFee].(uint64),
	}, nil
}
