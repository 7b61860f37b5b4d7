package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/studyhall/studyhall/pkg/idx"
	"github.com/studyhall/studyhall/pkg/jwtx"
)

// initSigningKey loads the Ed25519 signing key from cfg.KeyFile, or
// generates an ephemeral one. Ephemeral keys invalidate all outstanding
// access tokens on restart; refresh tokens survive, so sessions recover
// through the normal refresh path.
func initSigningKey(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, error) {
	pemKey, kid, err := loadOrGenerateKey(cfg.KeyFile)
	if err != nil {
		return nil, nil, err
	}

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, fmt.Errorf("failed to register signing key: %w", err)
	}

	if cfg.KeyFile == "" {
		logger.Info("ephemeral signing key generated", "kid", kid)
	} else {
		logger.Info("signing key loaded", "kid", kid, "path", cfg.KeyFile)
	}
	return signer, keys, nil
}

func loadOrGenerateKey(path string) ([]byte, string, error) {
	if path != "" {
		pemKey, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read signing key: %w", err)
		}
		return pemKey, "primary", nil
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate signing key: %w", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, "", err
	}
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return pemKey, idx.New().String(), nil
}
