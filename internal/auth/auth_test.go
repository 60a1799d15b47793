package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestFixedCredentialsExactMatch(t *testing.T) {
	creds := DemoCredentials()
	ctx := context.Background()

	assert.NoError(t, creds.Authenticate(ctx, "admin", "temple123"))

	for _, c := range []struct{ user, pass string }{
		{"Admin", "temple123"},
		{"admin", "Temple123"},
		{" admin", "temple123"},
		{"admin", "temple123 "},
		{"", ""},
		{"admin", ""},
	} {
		assert.ErrorIs(t, creds.Authenticate(ctx, c.user, c.pass), ErrInvalidCredentials, "%q/%q", c.user, c.pass)
	}
}

func TestFixedCredentialsHint(t *testing.T) {
	assert.Equal(t, "Try: admin / temple123", DemoCredentials().Hint())
	assert.Empty(t, FixedCredentials{Username: "a", Password: "b"}.Hint())
}

func TestHashedCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	creds := HashedCredentials{Username: "priest", PasswordHash: string(hash)}
	ctx := context.Background()

	assert.NoError(t, creds.Authenticate(ctx, "priest", "s3cret"))
	assert.ErrorIs(t, creds.Authenticate(ctx, "priest", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, creds.Authenticate(ctx, "other", "s3cret"), ErrInvalidCredentials)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("lotus")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "lotus"))
	assert.False(t, CheckPassword(hash, "Lotus"))
}

func TestHashedCredentialsAlwaysChecksThePassword(t *testing.T) {
	var calls int
	orig := checkPassword
	checkPassword = func(hash, plain string) bool {
		calls++
		return orig(hash, plain)
	}
	t.Cleanup(func() { checkPassword = orig })

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	creds := HashedCredentials{Username: "priest", PasswordHash: string(hash)}
	ctx := context.Background()

	for _, user := range []string{"priest", "other", ""} {
		calls = 0
		_ = creds.Authenticate(ctx, user, "wrong")
		assert.Equal(t, 1, calls, "user %q", user)
	}
}
