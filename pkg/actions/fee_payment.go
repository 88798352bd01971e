package actions

import (
	"context"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
	"github.com/aretw0/fluxfee/pkg/schema"
)

// FeePaymentSuccessMessage is the confirmation text of a successful fee payment.
const FeePaymentSuccessMessage = "Fee payment transaction submitted successfully"

const feePaymentDescription = `This tool can be used to submit a fee payment transaction.

  Inputs (input is a JSON string):
  quoteReq: object, e.g., { "quote": { "payer": "SomePubKeyString", "fee": 1000000 } } (required)
  priorityFee: number, e.g., 100000 (required)`

// FeePayment submits a fee payment for a quote through the agent client.
type FeePayment struct {
	base
	client ports.AgentClient
}

var _ ports.Action = (*FeePayment)(nil)

// NewFeePayment creates the solana_submit_fee_payment action.
func NewFeePayment(client ports.AgentClient, opts ...Option) *FeePayment {
	info := domain.ActionInfo{
		Name:        domain.ActionSubmitFeePayment,
		Description: feePaymentDescription,
		Parameters:  schema.FeePaymentSchema.JSONSchema(),
	}
	return &FeePayment{
		base:   newBase(info, FeePaymentSuccessMessage, opts),
		client: client,
	}
}

// Call decodes input, submits the payment and returns the JSON result.
func (a *FeePayment) Call(ctx context.Context, input string) string {
	return a.invoke(ctx, input, a.submit)
}

func (a *FeePayment) submit(ctx context.Context, input string) (string, error) {
	req, err := schema.DecodeFeePayment(input)
	if err != nil {
		return "", err
	}
	if a.client == nil {
		return "", errNoClient
	}
	return a.client.SubmitFeePayment(ctx, req.QuoteReq, req.PriorityFee)
}
