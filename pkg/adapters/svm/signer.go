package svm

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ErrNoSigner is returned when neither a keypair file nor a private key is configured.
var ErrNoSigner = errors.New("no signer configured: set a keypair path or a base58 private key")

// LoadSigner loads the agent keypair, preferring a solana-keygen JSON file over a base58 key.
// A leading "~/" in keypairPath is expanded to the home directory.
func LoadSigner(keypairPath, privateKey string) (solana.PrivateKey, error) {
	switch {
	case keypairPath != "":
		path, err := expandHome(keypairPath)
		if err != nil {
			return nil, err
		}
		key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read keypair %s: %w", path, err)
		}
		return key, validateSigner(key)
	case privateKey != "":
		key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(privateKey))
		if err != nil {
			return nil, fmt.Errorf("invalid base58 private key: %w", err)
		}
		return key, validateSigner(key)
	default:
		return nil, ErrNoSigner
	}
}

func validateSigner(key solana.PrivateKey) error {
	if len(key) != ed25519.PrivateKeySize {
		return fmt.Errorf("invalid private key length %d, want %d", len(key), ed25519.PrivateKeySize)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
