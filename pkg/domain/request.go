package domain

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
)

// FeePaymentRequest is the validated input of the fee payment action.
type FeePaymentRequest struct {
	// QuoteReq is forwarded to the client exactly as received.
	QuoteReq    json.RawMessage
	PriorityFee uint64
}

// FeeClaimRequest is the validated input of the fee claim action.
type FeeClaimRequest struct {
	Payer       solana.PublicKey
	Mint        solana.PublicKey
	PriorityFee uint64
}
