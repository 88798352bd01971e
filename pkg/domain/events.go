package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventActionCall   EventType = "action_call"
	EventActionReturn EventType = "action_return"
)

// ActionEvent describes one invocation. Status, Code and Duration are set on return only.
type ActionEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Type      EventType     `json:"type"`
	Action    string        `json:"action"`
	Status    Status        `json:"status,omitempty"`
	Code      string        `json:"code,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for action observability.
type LifecycleHooks struct {
	OnActionCall   func(context.Context, *ActionEvent)
	OnActionReturn func(context.Context, *ActionEvent)
}

// Merge returns hooks that call h first and then other.
// other still runs when h panics; the panic is then re-raised.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActionCall:   chain(h.OnActionCall, other.OnActionCall),
		OnActionReturn: chain(h.OnActionReturn, other.OnActionReturn),
	}
}

func chain(a, b func(context.Context, *ActionEvent)) func(context.Context, *ActionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *ActionEvent) {
		defer b(ctx, e)
		a(ctx, e)
	}
}
