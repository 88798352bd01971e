package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fluxfee.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoints:
    - https://rpc-a.example.com
    - https://rpc-b.example.com
  commitment: finalized
  skip_preflight: true
fluxbeam:
  base_url: https://fees.example.com/v2
  timeout: 45s
wallet:
  keypair_path: ~/.config/solana/id.json
log:
  level: debug
mcp:
  transport: sse
  port: 9000
input:
  max_size: 4096
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://rpc-a.example.com", "https://rpc-b.example.com"}, cfg.RPC.Endpoints)
	assert.Equal(t, "finalized", cfg.RPC.Commitment)
	assert.True(t, cfg.RPC.SkipPreflight)
	assert.Equal(t, "https://fees.example.com/v2", cfg.FluxBeam.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.FluxBeam.Timeout)
	assert.Equal(t, Default().FluxBeam.PaymentPath, cfg.FluxBeam.PaymentPath, "unset keys keep defaults")
	assert.Equal(t, "~/.config/solana/id.json", cfg.Wallet.KeypairPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, TransportSSE, cfg.MCP.Transport)
	assert.Equal(t, 9000, cfg.MCP.Port)
	assert.Equal(t, 4096, cfg.Input.MaxSize)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoints: [https://from-file.example.com]
log:
  level: warn
`)
	t.Setenv("FLUXFEE_RPC_ENDPOINTS", "https://env-a.example.com, https://env-b.example.com")
	t.Setenv("FLUXFEE_RPC_SKIP_PREFLIGHT", "true")
	t.Setenv("FLUXFEE_FLUXBEAM_TIMEOUT", "5s")
	t.Setenv("FLUXFEE_SERVER_PORT", "9090")
	t.Setenv("FLUXFEE_WALLET_PRIVATE_KEY", "base58key")
	t.Setenv("FLUXFEE_MAX_INPUT_SIZE", "2048")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://env-a.example.com", "https://env-b.example.com"}, cfg.RPC.Endpoints)
	assert.True(t, cfg.RPC.SkipPreflight)
	assert.Equal(t, 5*time.Second, cfg.FluxBeam.Timeout)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "base58key", cfg.Wallet.PrivateKey)
	assert.Equal(t, 2048, cfg.Input.MaxSize)
	assert.Equal(t, "warn", cfg.Log.Level, "file values survive when no env is set")
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, `
rpc:
  endpoint: https://typo.example.com
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "endpoint")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "rpc: [unclosed")
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid Default", func(c *Config) {}, ""},
		{"No Endpoints", func(c *Config) { c.RPC.Endpoints = []string{" ", ""} }, "rpc.endpoints"},
		{"Bad Commitment", func(c *Config) { c.RPC.Commitment = "max" }, "rpc.commitment"},
		{"No Base URL", func(c *Config) { c.FluxBeam.BaseURL = "" }, "fluxbeam.base_url"},
		{"Zero Timeout", func(c *Config) { c.FluxBeam.Timeout = 0 }, "fluxbeam.timeout"},
		{"Bad Log Level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"Bad Transport", func(c *Config) { c.MCP.Transport = "websocket" }, "mcp.transport"},
		{"Bad Port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"Negative Input Size", func(c *Config) { c.Input.MaxSize = -1 }, "input.max_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.RPC.Commitment = "max"
	cfg.MCP.Transport = "grpc"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc.commitment")
	assert.Contains(t, err.Error(), "mcp.transport")
}

func TestConfig_SVM(t *testing.T) {
	cfg := Default()
	cfg.RPC.Commitment = "finalized"
	cfg.RPC.SkipPreflight = true

	svmCfg := cfg.SVM()
	assert.Equal(t, cfg.RPC.Endpoints, svmCfg.Endpoints)
	assert.Equal(t, rpc.CommitmentFinalized, svmCfg.Commitment)
	assert.True(t, svmCfg.SkipPreflight)
	assert.Equal(t, cfg.FluxBeam.Timeout, svmCfg.Timeout)
}
