package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/ports"
)

// Registry manages the available actions by name.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]ports.Action
}

// NewRegistry creates a registry holding the given actions.
func NewRegistry(actions ...ports.Action) *Registry {
	r := &Registry{
		actions: make(map[string]ports.Action, len(actions)),
	}
	for _, a := range actions {
		r.Register(a)
	}
	return r
}

// Register adds an action to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(action ports.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[action.Name()] = action
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (ports.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Invoke looks up an action by name and calls it with input.
// The only error is domain.ErrActionNotFound; action failures are inside the returned text.
func (r *Registry) Invoke(ctx context.Context, name, input string) (string, error) {
	action, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrActionNotFound, name)
	}
	return action.Call(ctx, input), nil
}

// List returns the metadata of every registered action, sorted by name.
func (r *Registry) List() []domain.ActionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]domain.ActionInfo, 0, len(r.actions))
	for _, a := range r.actions {
		infos = append(infos, a.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
