package svm

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// JSON-RPC error codes returned by Solana nodes for rejected transactions.
const (
	rpcCodeSendTransactionPreflightFailure = -32002
	rpcCodeSignatureVerificationFailure    = -32003
)

// classifyRPCError maps a sendTransaction failure to a coded error.
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}
	if isTimeout(err) {
		return domain.NewCodedError(domain.CodeTimeout, "", err)
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return domain.NewCodedError(rpcErrorCode(rpcErr), rpcErr.Message, err)
	}
	return domain.NewCodedError(domain.CodeRPC, "", err)
}

func rpcErrorCode(e *jsonrpc.RPCError) string {
	msg := strings.ToLower(e.Message)
	switch {
	case strings.Contains(msg, "insufficient"),
		strings.Contains(msg, "no record of a prior credit"):
		return domain.CodeInsufficientFunds
	case strings.Contains(msg, "blockhash not found"):
		return domain.CodeBlockhashNotFound
	case e.Code == rpcCodeSendTransactionPreflightFailure,
		e.Code == rpcCodeSignatureVerificationFailure:
		return domain.CodeTransactionRejected
	default:
		return domain.CodeRPC
	}
}

// classifyTransportError handles failures reaching the fee API.
func classifyTransportError(err error) error {
	if isTimeout(err) {
		return domain.NewCodedError(domain.CodeTimeout, "", err)
	}
	return domain.NewCodedError(domain.CodeAPI, "", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
