package svm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aretw0/fluxfee/pkg/domain"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// maxResponseSize bounds how much of an API response is read.
const maxResponseSize = 1 << 20

type feePaymentBody struct {
	QuoteReq    json.RawMessage `json:"quoteReq"`
	PriorityFee uint64          `json:"priorityFee"`
}

type feeClaimBody struct {
	Payer       string `json:"payer"`
	Mint        string `json:"mint"`
	PriorityFee uint64 `json:"priorityFee"`
}

type transactionResponse struct {
	Transaction string `json:"transaction"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// buildTransaction posts body to the fee API and decodes the unsigned transaction it returns.
func (c *Client) buildTransaction(ctx context.Context, path string, body any) (*solana.Transaction, error) {
	var payload bytes.Buffer
	enc := json.NewEncoder(&payload)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.cfg.APIBaseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, data)
	}

	var out transactionResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.NewCodedError(domain.CodeAPI, fmt.Sprintf("invalid fee API response: %v", err), err)
	}
	if out.Transaction == "" {
		return nil, domain.NewCodedError(domain.CodeAPI, "fee API response has no transaction", nil)
	}

	return decodeTransaction(out.Transaction)
}

func decodeTransaction(encoded string) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, domain.NewCodedError(domain.CodeInvalidTransaction, fmt.Sprintf("transaction is not valid base64: %v", err), err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, domain.NewCodedError(domain.CodeInvalidTransaction, fmt.Sprintf("failed to decode transaction: %v", err), err)
	}
	return tx, nil
}

// apiError keeps the API's own code and message when it sends them.
func apiError(status int, body []byte) error {
	var e apiErrorResponse
	_ = json.Unmarshal(body, &e)

	msg := e.Error
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	code := e.Code
	if code == "" {
		code = domain.CodeAPI
	}
	return domain.NewCodedError(code, msg, fmt.Errorf("fee API returned status %d", status))
}
