package ports

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"
)

// AgentClient submits fee transactions on behalf of the identity it was built with.
//
// Both methods return the transaction signature. Errors implementing domain.Coder have
// their code passed through to the agent.
type AgentClient interface {
	// SubmitFeePayment pays the fee described by quoteReq. quoteReq is opaque to the caller.
	SubmitFeePayment(ctx context.Context, quoteReq json.RawMessage, priorityFee uint64) (string, error)
	// SubmitFeeClaim claims the fees accrued by payer for the given mint.
	SubmitFeeClaim(ctx context.Context, payer, mint solana.PublicKey, priorityFee uint64) (string, error)
}
