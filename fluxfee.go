package fluxfee

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/aretw0/fluxfee/internal/logging"
	"github.com/aretw0/fluxfee/pkg/actions"
	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
	"github.com/aretw0/fluxfee/pkg/registry"
)

// Version is the module release, trimmed by callers.
//
//go:embed VERSION
var Version string

// Toolkit is the high-level entry point of the library.
// It owns the two fee actions, built around one AgentClient, and a registry to invoke them by name.
type Toolkit struct {
	registry     *registry.Registry
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	maxInputSize int
}

// Option defines a functional option for configuring the Toolkit.
type Option func(*Toolkit)

// WithLifecycleHooks registers observability hooks on every action.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Toolkit) {
		t.hooks = t.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// WithMaxInputSize caps the size of action input in bytes.
func WithMaxInputSize(n int) Option {
	return func(t *Toolkit) {
		t.maxInputSize = n
	}
}

// New builds a Toolkit whose actions submit through client.
func New(client ports.AgentClient, opts ...Option) *Toolkit {
	tk := &Toolkit{}
	for _, opt := range opts {
		opt(tk)
	}
	if tk.logger == nil {
		tk.logger = logging.NewNop()
	}

	actionOpts := []actions.Option{
		actions.WithLogger(tk.logger),
		actions.WithLifecycleHooks(tk.hooks),
		actions.WithMaxInputSize(tk.maxInputSize),
	}
	tk.registry = registry.NewRegistry(
		actions.NewFeePayment(client, actionOpts...),
		actions.NewFeeClaim(client, actionOpts...),
	)
	return tk
}

// Registry exposes the action registry, for adapters.
func (t *Toolkit) Registry() *registry.Registry {
	return t.registry
}

// Invoke calls the named action. See registry.Registry.Invoke.
func (t *Toolkit) Invoke(ctx context.Context, name, input string) (string, error) {
	return t.registry.Invoke(ctx, name, input)
}

// SubmitFeePayment calls solana_submit_fee_payment with input.
func (t *Toolkit) SubmitFeePayment(ctx context.Context, input string) string {
	out, _ := t.registry.Invoke(ctx, domain.ActionSubmitFeePayment, input)
	return out
}

// SubmitFeeClaim calls solana_submit_fee_claim with input.
func (t *Toolkit) SubmitFeeClaim(ctx context.Context, input string) string {
	out, _ := t.registry.Invoke(ctx, domain.ActionSubmitFeeClaim, input)
	return out
}

// List returns the metadata of the available actions.
func (t *Toolkit) List() []domain.ActionInfo {
	return t.registry.List()
}
