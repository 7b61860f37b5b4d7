package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/studyhall/studyhall/pkg/jwtx"
)

func newTestSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func TestSignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "key-1")

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewCommonEdDSA(keys, "studyhall")

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456", "alice@example.com", "STUDENT", "Alice",
		jwtx.DefaultAccessTokenTTL, "studyhall", time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "sess-456", got.SID)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "STUDENT", got.Role)
	require.Equal(t, "Alice", got.Name)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	signer := newTestSigner(t, "key-1")

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewCommonEdDSA(keys, "studyhall")

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456", "", "STUDENT", "",
		jwtx.DefaultAccessTokenTTL, "someone-else", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer := newTestSigner(t, "key-1")

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewCommonEdDSA(keys, "studyhall")

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456", "", "STUDENT", "",
		time.Minute, "studyhall", time.Now().UTC().Add(-time.Hour),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	signer := newTestSigner(t, "key-1")
	other := newTestSigner(t, "key-2")

	// Verifier only trusts key-2.
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(other))
	verifier := jwtx.NewCommonEdDSA(keys, "studyhall")

	claims := jwtx.NewAccessClaims(
		"user-123", "sess-456", "", "STUDENT", "",
		jwtx.DefaultAccessTokenTTL, "studyhall", time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(newTestSigner(t, "key-1")))
	verifier := jwtx.NewCommonEdDSA(keys, "studyhall")

	_, err := verifier.Verify("not.a.jwt")
	require.Error(t, err)
}

func TestClaimsExpiryLeeway(t *testing.T) {
	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims(
		"u", "s", "", "STUDENT", "",
		-30*time.Second, "studyhall", now,
	)

	// Expired half a minute ago: fails strictly, passes with a minute leeway.
	require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	require.NoError(t, claims.ValidateExpiryWithLeeway(time.Minute))
}
