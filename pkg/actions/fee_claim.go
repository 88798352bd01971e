package actions

import (
	"context"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
	"github.com/aretw0/fluxfee/pkg/schema"
)

// FeeClaimSuccessMessage is the confirmation text of a successful fee claim.
const FeeClaimSuccessMessage = "Fee claim transaction submitted successfully"

const feeClaimDescription = `This tool can be used to submit a fee claim transaction.

  Inputs (input is a JSON string):
  payer: string, e.g., "SomePubKeyString" (required)
  mint: string, e.g., "SomeMintPubKeyString" (required)
  priorityFee: number, e.g., 100000 (required)`

// FeeClaim submits a fee claim for a payer/mint pair through the agent client.
type FeeClaim struct {
	base
	client ports.AgentClient
}

var _ ports.Action = (*FeeClaim)(nil)

// NewFeeClaim creates the solana_submit_fee_claim action.
func NewFeeClaim(client ports.AgentClient, opts ...Option) *FeeClaim {
	info := domain.ActionInfo{
		Name:        domain.ActionSubmitFeeClaim,
		Description: feeClaimDescription,
		Parameters:  schema.FeeClaimSchema.JSONSchema(),
	}
	return &FeeClaim{
		base:   newBase(info, FeeClaimSuccessMessage, opts),
		client: client,
	}
}

// Call decodes input, submits the claim and returns the JSON result.
func (a *FeeClaim) Call(ctx context.Context, input string) string {
	return a.invoke(ctx, input, a.submit)
}

func (a *FeeClaim) submit(ctx context.Context, input string) (string, error) {
	req, err := schema.DecodeFeeClaim(input)
	if err != nil {
		return "", err
	}
	if a.client == nil {
		return "", errNoClient
	}
	return a.client.SubmitFeeClaim(ctx, req.Payer, req.Mint, req.PriorityFee)
}
