package ports

import (
	"context"

	"github.com/aretw0/fluxfee/pkg/domain"
)

// Action is a named, stateless request/response unit.
// Call never fails: every outcome is encoded in the returned JSON text.
type Action interface {
	Name() string
	Info() domain.ActionInfo
	Call(ctx context.Context, input string) string
}

// Invoker calls actions by name. Adapters depend on it rather than on a concrete registry.
type Invoker interface {
	Invoke(ctx context.Context, name, input string) (string, error)
	List() []domain.ActionInfo
}
