package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-management-api/pkg/security"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokengen(t *testing.T) {
	out, err := execute(t, "--subject", "alice", "--secret", "s3cret", "--ttl", "5m")
	require.NoError(t, err)

	claims, err := security.DecodeToken(out)
	require.NoError(t, err)
	assert.Equal(t, "alice", security.Subject(claims))

	_, err = jwt.Parse(out, func(*jwt.Token) (any, error) { return []byte("s3cret"), nil })
	assert.NoError(t, err, "token must verify with the given secret")
}

func TestTokengen_SecretFromEnv(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "from-env")

	out, err := execute(t)
	require.NoError(t, err)

	_, err = jwt.Parse(out, func(*jwt.Token) (any, error) { return []byte("from-env"), nil })
	assert.NoError(t, err)
}

func TestTokengen_RejectsNonPositiveTTL(t *testing.T) {
	_, err := execute(t, "--ttl", "0s")
	assert.ErrorContains(t, err, "ttl must be positive")
}
