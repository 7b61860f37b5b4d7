package cryptox_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studyhall/studyhall/pkg/cryptox"
)

func TestGenerateToken(t *testing.T) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url, no padding

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	fp := cryptox.FingerprintToken("some-token")

	// Deterministic, fixed length, and never the input itself.
	require.Equal(t, fp, cryptox.FingerprintToken("some-token"))
	require.Len(t, fp, 43)
	require.NotEqual(t, "some-token", fp)
	require.NotEqual(t, fp, cryptox.FingerprintToken("some-other-token"))
}

func TestGenerateJoinCode(t *testing.T) {
	code, err := cryptox.GenerateJoinCode()
	require.NoError(t, err)
	require.Len(t, code, cryptox.JoinCodeLength)
	require.Regexp(t, `^[A-Z0-9]{8}$`, code)
}
