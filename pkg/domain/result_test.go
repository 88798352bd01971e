package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionResult_SuccessText(t *testing.T) {
	r := domain.Success("Fee payment transaction submitted successfully", "sig_abc")

	assert.Equal(t,
		`{"status":"success","message":"Fee payment transaction submitted successfully","transaction":"sig_abc"}`,
		r.Text())
}

func TestActionResult_FailureText(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"With Code", "INSUFFICIENT_FUNDS", `{"status":"error","message":"Insufficient balance","code":"INSUFFICIENT_FUNDS"}`},
		{"Default Code", "", `{"status":"error","message":"Insufficient balance","code":"UNKNOWN_ERROR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.Failure("Insufficient balance", tt.code)
			assert.Equal(t, tt.want, r.Text())
		})
	}
}

func TestActionResult_ShapesAreExclusive(t *testing.T) {
	// A zero-value result is still an error envelope with the default code.
	var r domain.ActionResult

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(r.Text()), &fields))
	assert.Equal(t, "error", fields["status"])
	assert.Equal(t, domain.CodeUnknown, fields["code"])
	assert.NotContains(t, fields, "transaction")

	// Success never leaks a code.
	fields = nil
	require.NoError(t, json.Unmarshal([]byte(domain.Success("ok", "").Text()), &fields))
	assert.Contains(t, fields, "transaction")
	assert.NotContains(t, fields, "code")
}

func TestActionResult_NoHTMLEscaping(t *testing.T) {
	r := domain.Failure("amount <= 0 & fee > balance", "")
	assert.Contains(t, r.Text(), "amount <= 0 & fee > balance")
}

func TestParseResult(t *testing.T) {
	r, err := domain.ParseResult(domain.Failure("boom", "RPC_ERROR").Text())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, r.Status)
	assert.Equal(t, "boom", r.Message)
	assert.Equal(t, "RPC_ERROR", r.Code)
	assert.False(t, r.IsSuccess())

	_, err = domain.ParseResult("not-json")
	assert.Error(t, err)
}

func TestErrorCode(t *testing.T) {
	coded := domain.NewCodedError(domain.CodeInsufficientFunds, "Insufficient balance", nil)

	assert.Equal(t, domain.CodeInsufficientFunds, domain.ErrorCode(coded))
	assert.Equal(t, domain.CodeInsufficientFunds, domain.ErrorCode(fmt.Errorf("submit: %w", coded)))
	assert.Equal(t, "", domain.ErrorCode(errors.New("plain")))
	assert.Equal(t, "", domain.ErrorCode(nil))

	// An empty code does not hide a deeper one.
	outer := domain.NewCodedError("", "outer", coded)
	assert.Equal(t, domain.CodeInsufficientFunds, domain.ErrorCode(outer))

	joined := errors.Join(errors.New("cleanup failed"), coded)
	assert.Equal(t, domain.CodeInsufficientFunds, domain.ErrorCode(joined))
	assert.Equal(t, domain.CodeInsufficientFunds, domain.ErrorCode(fmt.Errorf("submit: %w", joined)))
	assert.Equal(t, "", domain.ErrorCode(errors.Join(errors.New("a"), errors.New("b"))))
}

func TestCodedError_Message(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, "rpc down", domain.NewCodedError(domain.CodeRPC, "rpc down", cause).Error())
	assert.Equal(t, "connection refused", domain.NewCodedError(domain.CodeRPC, "", cause).Error())
	assert.Equal(t, domain.CodeRPC, domain.NewCodedError(domain.CodeRPC, "", nil).Error())
	assert.ErrorIs(t, domain.NewCodedError(domain.CodeRPC, "", cause), cause)
}
