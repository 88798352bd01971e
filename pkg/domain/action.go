package domain

// Action names as seen by the agent framework.
const (
	ActionSubmitFeePayment = "solana_submit_fee_payment"
	ActionSubmitFeeClaim   = "solana_submit_fee_claim"
)

// ActionInfo describes an action for listings and tool schemas.
type ActionInfo struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}
