package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/aretw0/fluxfee/pkg/schema"
)

var (
	errNoClient       = errors.New("agent client is not configured")
	errEmptySignature = errors.New("agent client returned an empty transaction signature")
)

// submitFunc validates input and performs the client call, returning the signature.
type submitFunc func(ctx context.Context, input string) (string, error)

// base carries what both actions share: metadata, logging, hooks and the result boundary.
type base struct {
	info           domain.ActionInfo
	successMessage string
	logger         *slog.Logger
	hooks          domain.LifecycleHooks
	maxInputSize   int
}

func (b *base) Name() string { return b.info.Name }

func (b *base) Info() domain.ActionInfo { return b.info }

// invoke runs submit and returns the encoded result. It never panics and never
// returns anything but a JSON envelope. Hooks cannot change the result.
func (b *base) invoke(ctx context.Context, input string, submit submitFunc) string {
	start := time.Now()
	b.emit(ctx, b.hooks.OnActionCall, &domain.ActionEvent{
		Timestamp: start,
		Type:      domain.EventActionCall,
		Action:    b.info.Name,
	})

	result := b.capture(ctx, input, submit)

	if result.IsSuccess() {
		b.logger.Info("action succeeded", "transaction", result.Transaction)
	} else {
		b.logger.Warn("action failed", "error", result.Message, "code", result.Code)
	}

	b.emit(ctx, b.hooks.OnActionReturn, &domain.ActionEvent{
		Timestamp: time.Now(),
		Type:      domain.EventActionReturn,
		Action:    b.info.Name,
		Status:    result.Status,
		Code:      result.Code,
		Duration:  time.Since(start),
	})

	return result.Text()
}

// emit calls hook, logging and swallowing any panic.
func (b *base) emit(ctx context.Context, hook func(context.Context, *domain.ActionEvent), e *domain.ActionEvent) {
	if hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("action hook panicked", "event", e.Type, "panic", r)
		}
	}()
	hook(ctx, e)
}

// capture turns every outcome of submit, including a panic, into an ActionResult.
func (b *base) capture(ctx context.Context, input string, submit submitFunc) (result domain.ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("action panicked", "panic", r)
			result = domain.Failure(fmt.Sprintf("action %s panicked: %v", b.info.Name, r), "")
		}
	}()

	b.logger.Debug("action called", "input_size", len(input))

	if err := schema.CheckInput(input, b.maxInputSize); err != nil {
		return domain.Failure(err.Error(), "")
	}

	signature, err := submit(ctx, input)
	if err != nil {
		return domain.Failure(err.Error(), domain.ErrorCode(err))
	}
	if signature == "" {
		return domain.Failure(errEmptySignature.Error(), "")
	}
	return domain.Success(b.successMessage, signature)
}
