// Package svm implements ports.AgentClient over the FluxBeam fee API and Solana JSON-RPC.
package svm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/fluxfee/internal/logging"
	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client is the ports.AgentClient backed by the fee API and Solana JSON-RPC.
// The fee API builds each transaction; the client signs it with the agent key and broadcasts it.
type Client struct {
	cfg     Config
	signer  solana.PrivateKey
	clients []*rpc.Client
	index   uint64
	logger  *slog.Logger
}

var _ ports.AgentClient = (*Client)(nil)

// NewClient creates a Client that signs with signer.
func NewClient(cfg Config, signer solana.PrivateKey) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("no RPC endpoints provided")
	}
	if err := validateSigner(signer); err != nil {
		return nil, err
	}

	cfg = cfg.withDefaults()
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	clients := make([]*rpc.Client, 0, len(cfg.Endpoints))
	for _, url := range cfg.Endpoints {
		clients = append(clients, rpc.New(url))
	}

	return &Client{
		cfg:     cfg,
		signer:  signer,
		clients: clients,
		logger:  logger.With("component", "svm_client", "agent", signer.PublicKey().String()),
	}, nil
}

// PublicKey returns the agent identity.
func (c *Client) PublicKey() solana.PublicKey {
	return c.signer.PublicKey()
}

// SubmitFeePayment asks the fee API for a payment transaction, signs it and broadcasts it.
func (c *Client) SubmitFeePayment(ctx context.Context, quoteReq json.RawMessage, priorityFee uint64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	tx, err := c.buildTransaction(ctx, c.cfg.PaymentPath, feePaymentBody{
		QuoteReq:    quoteReq,
		PriorityFee: priorityFee,
	})
	if err != nil {
		return "", err
	}
	return c.signAndSend(ctx, "fee_payment", tx)
}

// SubmitFeeClaim asks the fee API for a claim transaction, signs it and broadcasts it.
func (c *Client) SubmitFeeClaim(ctx context.Context, payer, mint solana.PublicKey, priorityFee uint64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	tx, err := c.buildTransaction(ctx, c.cfg.ClaimPath, feeClaimBody{
		Payer:       payer.String(),
		Mint:        mint.String(),
		PriorityFee: priorityFee,
	})
	if err != nil {
		return "", err
	}
	return c.signAndSend(ctx, "fee_claim", tx)
}

func (c *Client) signAndSend(ctx context.Context, operation string, tx *solana.Transaction) (string, error) {
	if err := c.sign(tx); err != nil {
		return "", err
	}

	sig, err := c.send(ctx, tx)
	if err != nil {
		c.logger.Warn("transaction rejected", "operation", operation, "error", err, "code", domain.ErrorCode(err))
		return "", err
	}

	c.logger.Info("transaction sent", "operation", operation, "signature", sig.String())
	return sig.String(), nil
}

// sign places the agent signature in the slot of its key among the required signers.
// Every other required signature must already be present.
func (c *Client) sign(tx *solana.Transaction) error {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 || len(tx.Message.AccountKeys) < required {
		return domain.NewCodedError(domain.CodeInvalidTransaction, "transaction has no valid signer set", nil)
	}

	agent := c.signer.PublicKey()
	slot := -1
	for i, key := range tx.Message.AccountKeys[:required] {
		if key.Equals(agent) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return domain.NewCodedError(domain.CodeSigningFailed,
			fmt.Sprintf("transaction does not require a signature from %s", agent), nil)
	}

	payload, err := tx.Message.MarshalBinary()
	if err != nil {
		return domain.NewCodedError(domain.CodeInvalidTransaction, fmt.Sprintf("failed to encode message: %v", err), err)
	}
	sig, err := c.signer.Sign(payload)
	if err != nil {
		return domain.NewCodedError(domain.CodeSigningFailed, fmt.Sprintf("failed to sign transaction: %v", err), err)
	}

	if len(tx.Signatures) != required {
		sigs := make([]solana.Signature, required)
		copy(sigs, tx.Signatures)
		tx.Signatures = sigs
	}
	tx.Signatures[slot] = sig

	for i, s := range tx.Signatures {
		if s == (solana.Signature{}) {
			return domain.NewCodedError(domain.CodeSigningFailed,
				fmt.Sprintf("transaction is missing a signature from %s", tx.Message.AccountKeys[i]), nil)
		}
	}
	return nil
}

// send broadcasts tx once through the next endpoint in rotation.
func (c *Client) send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	index := atomic.AddUint64(&c.index, 1) - 1
	client := c.clients[index%uint64(len(c.clients))]

	sig, err := client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       c.cfg.SkipPreflight,
		PreflightCommitment: c.cfg.Commitment,
	})
	if err != nil {
		return solana.Signature{}, classifyRPCError(err)
	}
	return sig, nil
}

// Close releases the RPC connections.
func (c *Client) Close() error {
	var errs []error
	for _, client := range c.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
