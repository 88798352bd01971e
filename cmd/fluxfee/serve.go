package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/aretw0/fluxfee/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the fee actions over HTTP:

  GET  /healthz
  GET  /actions
  POST /actions/{name}   (request body is the action input)
  GET  /metrics          (Prometheus; on server.metrics_port when set)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("metrics-port") {
			cfg.Server.MetricsPort, _ = cmd.Flags().GetInt("metrics-port")
		}

		rt, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := []httpAdapter.Option{httpAdapter.WithLogger(rt.logger)}
		if cfg.Server.MetricsPort == 0 {
			opts = append(opts, httpAdapter.WithMetrics(rt.metrics.Handler()))
		} else {
			metricsMux := http.NewServeMux()
			metricsMux.Handle("/metrics", rt.metrics.Handler())
			metricsAddr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
			go func() {
				if err := httpAdapter.ListenAndServe(ctx, metricsAddr, metricsMux, rt.logger); err != nil {
					rt.logger.Error("Metrics server failed", "error", err)
				}
			}()
		}

		handler := httpAdapter.NewHandler(rt.toolkit, opts...)
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := httpAdapter.ListenAndServe(ctx, addr, handler, rt.logger); err != nil {
			return err
		}
		rt.logger.Info("fluxfee server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Int("metrics-port", 0, "Serve /metrics on a separate port (0 keeps it on --port)")
}
