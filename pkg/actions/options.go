package actions

import (
	"log/slog"

	"github.com/aretw0/fluxfee/internal/logging"
	"github.com/aretw0/fluxfee/pkg/domain"
)

// Option configures an action.
type Option func(*base)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *base) {
		b.hooks = b.hooks.Merge(hooks)
	}
}

// WithMaxInputSize caps the accepted input size in bytes. Zero keeps the default.
func WithMaxInputSize(n int) Option {
	return func(b *base) {
		b.maxInputSize = n
	}
}

func newBase(info domain.ActionInfo, successMessage string, opts []Option) base {
	b := base{
		info:           info,
		successMessage: successMessage,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.With("action", info.Name)
	return b
}
