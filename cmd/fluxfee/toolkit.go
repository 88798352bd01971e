package main

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/fluxfee"
	"github.com/aretw0/fluxfee/internal/config"
	"github.com/aretw0/fluxfee/internal/logging"
	"github.com/aretw0/fluxfee/pkg/adapters/svm"
	"github.com/aretw0/fluxfee/pkg/observability"
)

// app bundles what the commands need to serve the actions.
type app struct {
	toolkit *fluxfee.Toolkit
	metrics *observability.Metrics
	logger  *slog.Logger
	client  *svm.Client
}

func (r *app) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(level)
	slog.SetDefault(logger)
	return logger
}

// newApp loads the agent keypair and builds the toolkit over the Solana client.
func newApp(cfg *config.Config) (*app, error) {
	logger := newLogger(cfg)

	signer, err := svm.LoadSigner(cfg.Wallet.KeypairPath, cfg.Wallet.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent keypair: %w", err)
	}

	svmCfg := cfg.SVM()
	svmCfg.Logger = logger
	client, err := svm.NewClient(svmCfg, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to create solana client: %w", err)
	}

	metrics := observability.NewMetrics()
	tk := fluxfee.New(client,
		fluxfee.WithLogger(logger),
		fluxfee.WithLifecycleHooks(metrics.Hooks()),
		fluxfee.WithMaxInputSize(cfg.Input.MaxSize),
	)

	logger.Info("Toolkit ready", "agent", client.PublicKey().String(), "endpoints", len(svmCfg.Endpoints))
	return &app{toolkit: tk, metrics: metrics, logger: logger, client: client}, nil
}
