// Package schema decodes the free-form JSON text sent by agents into typed action requests.
//
// A Schema maps field names to Types. Each Type decodes one raw JSON value and reports a
// reason when the value does not fit. Decode collects every field failure into an
// AggregateError so the agent sees all problems at once.
//
// Basic usage:
//
//	req, err := schema.DecodeFeeClaim(`{"payer":"...","mint":"...","priorityFee":5000}`)
//	if err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        log.Println(e)
//	    }
//	}
//
// Supported types: Object (kept verbatim as json.RawMessage), String, Uint (non-negative
// whole numbers) and Address (base58 Solana public keys).
package schema
