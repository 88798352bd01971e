package domain

import (
	"errors"
)

// ErrActionNotFound is returned when an action name is not registered.
var ErrActionNotFound = errors.New("action not found")

// ErrEmptyInput is returned when an action receives blank input.
var ErrEmptyInput = errors.New("input is empty")

// Error codes attached by the chain client. Anything without a code is reported as CodeUnknown.
const (
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeBlockhashNotFound   = "BLOCKHASH_NOT_FOUND"
	CodeTransactionRejected = "TRANSACTION_REJECTED"
	CodeInvalidTransaction  = "INVALID_TRANSACTION"
	CodeSigningFailed       = "SIGNING_FAILED"
	CodeRPC                 = "RPC_ERROR"
	CodeAPI                 = "API_ERROR"
	CodeTimeout             = "TIMEOUT"
)

// Coder is implemented by errors that expose a classification code.
type Coder interface {
	Code() string
}

// CodedError is a failure with a classification code that is passed through to the agent.
type CodedError struct {
	code    string
	message string
	cause   error
}

// NewCodedError creates a CodedError. If message is empty the cause's text is used.
func NewCodedError(code, message string, cause error) *CodedError {
	return &CodedError{code: code, message: message, cause: cause}
}

// Code returns the classification code.
func (e *CodedError) Code() string { return e.code }

func (e *CodedError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.code
}

func (e *CodedError) Unwrap() error { return e.cause }

// ErrorCode returns the first non-empty code found in err's tree, or "".
// The tree is walked depth-first like errors.As, including errors.Join branches.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if c, ok := err.(Coder); ok && c.Code() != "" {
		return c.Code()
	}
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return ErrorCode(u.Unwrap())
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if code := ErrorCode(inner); code != "" {
				return code
			}
		}
	}
	return ""
}
