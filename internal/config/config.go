// Package config loads the fluxfee runtime configuration from a YAML file and
// FLUXFEE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/fluxfee/internal/logging"
	"github.com/aretw0/fluxfee/pkg/adapters/svm"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "fluxfee.yaml"

// DefaultEndpoint is the public mainnet RPC endpoint.
const DefaultEndpoint = "https://api.mainnet-beta.solana.com"

// Config is the full runtime configuration.
type Config struct {
	RPC      RPCConfig      `mapstructure:"rpc" yaml:"rpc"`
	FluxBeam FluxBeamConfig `mapstructure:"fluxbeam" yaml:"fluxbeam"`
	Wallet   WalletConfig   `mapstructure:"wallet" yaml:"wallet"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	MCP      MCPConfig      `mapstructure:"mcp" yaml:"mcp"`
	Input    InputConfig    `mapstructure:"input" yaml:"input"`
}

type RPCConfig struct {
	Endpoints     []string `mapstructure:"endpoints" yaml:"endpoints"`
	Commitment    string   `mapstructure:"commitment" yaml:"commitment"`
	SkipPreflight bool     `mapstructure:"skip_preflight" yaml:"skip_preflight"`
}

type FluxBeamConfig struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	PaymentPath string        `mapstructure:"payment_path" yaml:"payment_path"`
	ClaimPath   string        `mapstructure:"claim_path" yaml:"claim_path"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// WalletConfig locates the agent keypair. KeypairPath wins over PrivateKey.
type WalletConfig struct {
	KeypairPath string `mapstructure:"keypair_path" yaml:"keypair_path"`
	PrivateKey  string `mapstructure:"private_key" yaml:"private_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// ServerConfig drives the HTTP surface. A zero MetricsPort mounts /metrics on Port.
type ServerConfig struct {
	Port        int `mapstructure:"port" yaml:"port"`
	MetricsPort int `mapstructure:"metrics_port" yaml:"metrics_port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Port      int    `mapstructure:"port" yaml:"port"`
}

// InputConfig bounds action input. Zero keeps the library default.
type InputConfig struct {
	MaxSize int `mapstructure:"max_size" yaml:"max_size"`
}

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"FLUXFEE_RPC_ENDPOINTS":         "rpc.endpoints",
	"FLUXFEE_RPC_COMMITMENT":        "rpc.commitment",
	"FLUXFEE_RPC_SKIP_PREFLIGHT":    "rpc.skip_preflight",
	"FLUXFEE_FLUXBEAM_BASE_URL":     "fluxbeam.base_url",
	"FLUXFEE_FLUXBEAM_PAYMENT_PATH": "fluxbeam.payment_path",
	"FLUXFEE_FLUXBEAM_CLAIM_PATH":   "fluxbeam.claim_path",
	"FLUXFEE_FLUXBEAM_TIMEOUT":      "fluxbeam.timeout",
	"FLUXFEE_WALLET_KEYPAIR_PATH":   "wallet.keypair_path",
	"FLUXFEE_WALLET_PRIVATE_KEY":    "wallet.private_key",
	"FLUXFEE_LOG_LEVEL":             "log.level",
	"FLUXFEE_SERVER_PORT":           "server.port",
	"FLUXFEE_SERVER_METRICS_PORT":   "server.metrics_port",
	"FLUXFEE_MCP_TRANSPORT":         "mcp.transport",
	"FLUXFEE_MCP_PORT":              "mcp.port",
	"FLUXFEE_MAX_INPUT_SIZE":        "input.max_size",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		RPC: RPCConfig{
			Endpoints:  []string{DefaultEndpoint},
			Commitment: "confirmed",
		},
		FluxBeam: FluxBeamConfig{
			BaseURL:     svm.DefaultAPIBaseURL,
			PaymentPath: svm.DefaultPaymentPath,
			ClaimPath:   svm.DefaultClaimPath,
			Timeout:     svm.DefaultTimeout,
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Port: 8080},
		MCP:    MCPConfig{Transport: TransportStdio, Port: 8081},
	}
}

// Load reads path (YAML), applies environment overrides and validates the result.
// A missing file is not an error when path is DefaultPath or empty.
func Load(path string) (*Config, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(raw, os.LookupEnv)

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string) (map[string]any, error) {
	explicit := path != "" && path != DefaultPath
	if path == "" {
		path = DefaultPath
	}

	raw := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return raw, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func applyEnv(raw map[string]any, lookup func(string) (string, bool)) {
	for env, key := range envKeys {
		if v, ok := lookup(env); ok && v != "" {
			setPath(raw, key, v)
		}
	}
}

// setPath stores v under a dotted key, creating intermediate maps.
func setPath(raw map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	m := raw
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate reports every invalid or missing value.
func (c *Config) Validate() error {
	var errs []error

	endpoints := c.RPC.Endpoints[:0]
	for _, e := range c.RPC.Endpoints {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}
	c.RPC.Endpoints = endpoints
	if len(c.RPC.Endpoints) == 0 {
		errs = append(errs, errors.New("rpc.endpoints: at least one endpoint is required"))
	}

	switch c.RPC.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		errs = append(errs, fmt.Errorf("rpc.commitment: unknown commitment %q", c.RPC.Commitment))
	}

	if c.FluxBeam.BaseURL == "" {
		errs = append(errs, errors.New("fluxbeam.base_url: required"))
	}
	if c.FluxBeam.Timeout <= 0 {
		errs = append(errs, errors.New("fluxbeam.timeout: must be positive"))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		errs = append(errs, fmt.Errorf("mcp.transport: must be %q or %q", TransportStdio, TransportSSE))
	}

	for key, port := range map[string]int{
		"server.port":         c.Server.Port,
		"server.metrics_port": c.Server.MetricsPort,
		"mcp.port":            c.MCP.Port,
	} {
		if port < 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s: %d out of range", key, port))
		}
	}

	if c.Input.MaxSize < 0 {
		errs = append(errs, errors.New("input.max_size: must not be negative"))
	}

	return errors.Join(errs...)
}

// SVM builds the chain client configuration.
func (c *Config) SVM() svm.Config {
	return svm.Config{
		Endpoints:     c.RPC.Endpoints,
		Commitment:    rpc.CommitmentType(c.RPC.Commitment),
		SkipPreflight: c.RPC.SkipPreflight,
		APIBaseURL:    c.FluxBeam.BaseURL,
		PaymentPath:   c.FluxBeam.PaymentPath,
		ClaimPath:     c.FluxBeam.ClaimPath,
		Timeout:       c.FluxBeam.Timeout,
	}
}
