package testutils

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Well-known mainnet addresses, valid base58 public keys for tests.
const (
	PayerAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	MintAddress  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// PaymentCall records one SubmitFeePayment invocation.
type PaymentCall struct {
	QuoteReq    json.RawMessage
	PriorityFee uint64
}

// ClaimCall records one SubmitFeeClaim invocation.
type ClaimCall struct {
	Payer       solana.PublicKey
	Mint        solana.PublicKey
	PriorityFee uint64
}

// FakeClient is an in-memory ports.AgentClient that records calls and returns canned results.
// It is safe for concurrent use.
type FakeClient struct {
	Signature string
	Err       error
	Panic     any

	mu       sync.Mutex
	payments []PaymentCall
	claims   []ClaimCall
}

func (c *FakeClient) SubmitFeePayment(ctx context.Context, quoteReq json.RawMessage, priorityFee uint64) (string, error) {
	c.mu.Lock()
	c.payments = append(c.payments, PaymentCall{QuoteReq: quoteReq, PriorityFee: priorityFee})
	c.mu.Unlock()
	return c.result()
}

func (c *FakeClient) SubmitFeeClaim(ctx context.Context, payer, mint solana.PublicKey, priorityFee uint64) (string, error) {
	c.mu.Lock()
	c.claims = append(c.claims, ClaimCall{Payer: payer, Mint: mint, PriorityFee: priorityFee})
	c.mu.Unlock()
	return c.result()
}

func (c *FakeClient) result() (string, error) {
	if c.Panic != nil {
		panic(c.Panic)
	}
	if c.Err != nil {
		return "", c.Err
	}
	return c.Signature, nil
}

// Payments returns a copy of the recorded payment calls.
func (c *FakeClient) Payments() []PaymentCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PaymentCall(nil), c.payments...)
}

// Claims returns a copy of the recorded claim calls.
func (c *FakeClient) Claims() []ClaimCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ClaimCall(nil), c.claims...)
}
