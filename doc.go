/*
Package fluxfee exposes Solana fee payment and fee claim submission as agent actions.

An agent framework hands each action a JSON string and receives a JSON string back. The
library validates the input, converts it into typed parameters, delegates to an
AgentClient that builds, signs and broadcasts the transaction, and normalizes the outcome
into one envelope:

	{"status":"success","message":"Fee claim transaction submitted successfully","transaction":"<signature>"}
	{"status":"error","message":"Insufficient balance","code":"INSUFFICIENT_FUNDS"}

Failures without a classification code are reported with "UNKNOWN_ERROR". An action
never returns a Go error and never panics; the envelope is always valid JSON.

# Actions

  - solana_submit_fee_payment: {"quoteReq": {...}, "priorityFee": 100000}
  - solana_submit_fee_claim: {"payer": "<address>", "mint": "<address>", "priorityFee": 100000}

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/fluxfee"
		"github.com/aretw0/fluxfee/pkg/adapters/svm"
	)

	func main() {
		signer, err := svm.LoadSigner("~/.config/solana/id.json", "")
		if err != nil {
			log.Fatal(err)
		}
		client, err := svm.NewClient(svm.Config{
			Endpoints: []string{"https://api.mainnet-beta.solana.com"},
		}, signer)
		if err != nil {
			log.Fatal(err)
		}

		tk := fluxfee.New(client)
		fmt.Println(tk.SubmitFeeClaim(context.Background(),
			`{"payer":"...","mint":"...","priorityFee":5000}`))
	}

The same actions are served to agents over MCP (pkg/adapters/mcp) and plain HTTP
(pkg/adapters/http); see cmd/fluxfee.
*/
package fluxfee
