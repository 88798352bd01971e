package domain

import (
	"bytes"
	"encoding/json"
)

// Status is the outcome of an action invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// CodeUnknown is attached to error results whose underlying failure carries no code.
const CodeUnknown = "UNKNOWN_ERROR"

// ActionResult is the envelope returned to the agent for every invocation.
// Exactly one of Transaction (success) or Code (error) is meaningful, as given by Status.
// Build it with Success or Failure.
type ActionResult struct {
	Status      Status
	Message     string
	Transaction string
	Code        string
}

// Success builds a success result for the given transaction signature.
func Success(message, transaction string) ActionResult {
	return ActionResult{
		Status:      StatusSuccess,
		Message:     message,
		Transaction: transaction,
	}
}

// Failure builds an error result. An empty code becomes CodeUnknown.
func Failure(message, code string) ActionResult {
	if code == "" {
		code = CodeUnknown
	}
	return ActionResult{
		Status:  StatusError,
		Message: message,
		Code:    code,
	}
}

// IsSuccess reports whether the result carries a transaction.
func (r ActionResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

type successWire struct {
	Status      Status `json:"status"`
	Message     string `json:"message"`
	Transaction string `json:"transaction"`
}

type errorWire struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// MarshalJSON emits only the fields that belong to the result's status.
func (r ActionResult) MarshalJSON() ([]byte, error) {
	if r.IsSuccess() {
		return marshalWire(successWire{Status: r.Status, Message: r.Message, Transaction: r.Transaction})
	}
	code := r.Code
	if code == "" {
		code = CodeUnknown
	}
	return marshalWire(errorWire{Status: StatusError, Message: r.Message, Code: code})
}

func marshalWire(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts either wire shape.
func (r *ActionResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status      Status `json:"status"`
		Message     string `json:"message"`
		Transaction string `json:"transaction"`
		Code        string `json:"code"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ActionResult(raw)
	return nil
}

// fallbackText is returned if encoding ever fails, so callers always receive valid JSON.
const fallbackText = `{"status":"error","message":"failed to encode action result","code":"UNKNOWN_ERROR"}`

// Text encodes the result as the JSON text handed back to the agent.
// HTML characters are left unescaped so messages round-trip as written.
func (r ActionResult) Text() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fallbackText
	}
	return string(b)
}

// ParseResult decodes the JSON text produced by Text.
func ParseResult(text string) (ActionResult, error) {
	var r ActionResult
	err := json.Unmarshal([]byte(text), &r)
	return r, err
}
