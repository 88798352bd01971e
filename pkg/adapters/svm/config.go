package svm

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultAPIBaseURL  = "https://api.fluxbeam.xyz/v1"
	DefaultPaymentPath = "fees/payment"
	DefaultClaimPath   = "fees/claim"
	DefaultTimeout     = 30 * time.Second
)

// Config configures the Client.
type Config struct {
	// Endpoints are Solana JSON-RPC URLs. Submissions rotate through them, one attempt each.
	Endpoints []string
	// Commitment is the preflight commitment used when sending.
	Commitment rpc.CommitmentType
	// SkipPreflight disables transaction simulation before broadcast.
	SkipPreflight bool

	// APIBaseURL is the fee API that builds the unsigned transactions.
	APIBaseURL  string
	PaymentPath string
	ClaimPath   string

	// Timeout bounds one whole submission: API call, signing and broadcast.
	Timeout time.Duration

	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Commitment == "" {
		c.Commitment = rpc.CommitmentConfirmed
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.PaymentPath == "" {
		c.PaymentPath = DefaultPaymentPath
	}
	if c.ClaimPath == "" {
		c.ClaimPath = DefaultClaimPath
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}
