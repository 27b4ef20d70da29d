package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

// clockAt returns a fixed clock and a pointer that tests can advance.
func clockAt(start time.Time) (func() time.Time, *time.Time) {
	current := start
	return func() time.Time { return current }, &current
}

func TestNewCodec_Validation(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		_, err := NewCodec(AlgHS256, nil, 0)
		require.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("rejects unknown algorithms", func(t *testing.T) {
		_, err := NewCodec("RS256", []byte(testSecret), 0)
		require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("defaults the issuance TTL", func(t *testing.T) {
		c, err := NewCodec(AlgHS256, []byte(testSecret), 0)
		require.NoError(t, err)
		require.Equal(t, DefaultAccessTokenTTL, c.DefaultTTL())
	})
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(AlgHS256, []byte(testSecret), 0)
	require.NoError(t, err)

	token, err := c.Issue("alice@example.com", 0)
	require.NoError(t, err)

	// Compact signed-token convention: header.claims.signature.
	require.Len(t, strings.Split(token, "."), 3)

	subject, err := c.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", subject)
}

func TestCodec_Expiry(t *testing.T) {
	t.Parallel()

	now, current := clockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	c, err := NewCodec(AlgHS256, []byte(testSecret), 30*time.Minute, WithClock(func() time.Time { return now() }))
	require.NoError(t, err)

	token, err := c.Issue("alice@example.com", 0)
	require.NoError(t, err)

	// Still valid just inside the window.
	*current = current.Add(29 * time.Minute)
	subject, err := c.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", subject)

	// Rejected once real time exceeds issued_at + ttl.
	*current = current.Add(2 * time.Minute)
	_, err = c.Verify(token)
	require.ErrorIs(t, err, ErrTokenRejected)
}

func TestCodec_TTLOverride(t *testing.T) {
	t.Parallel()

	now, current := clockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	c, err := NewCodec(AlgHS256, []byte(testSecret), 30*time.Minute, WithClock(func() time.Time { return now() }))
	require.NoError(t, err)

	token, err := c.Issue("alice@example.com", time.Hour)
	require.NoError(t, err)

	*current = current.Add(45 * time.Minute)
	_, err = c.Verify(token)
	require.NoError(t, err, "per-call ttl should override the default")
}

func TestCodec_TamperedPayload(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(AlgHS256, []byte(testSecret), 0)
	require.NoError(t, err)

	token, err := c.Issue("alice@example.com", 0)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// Flipping any byte of the claims segment must invalidate the signature.
	payload := []byte(parts[1])
	for i := 0; i < len(payload); i += 7 {
		mutated := append([]byte(nil), payload...)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		tampered := parts[0] + "." + string(mutated) + "." + parts[2]

		_, err := c.Verify(tampered)
		require.ErrorIs(t, err, ErrTokenRejected, "byte %d", i)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewCodec(AlgHS256, []byte(testSecret), 0)
	require.NoError(t, err)
	verifier, err := NewCodec(AlgHS256, []byte("rotated-secret"), 0)
	require.NoError(t, err)

	token, err := issuer.Issue("alice@example.com", 0)
	require.NoError(t, err)

	// Rotating the secret invalidates all outstanding tokens.
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrTokenRejected)
}

func TestCodec_Malformed(t *testing.T) {
	t.Parallel()

	c, err := NewCodec(AlgHS256, []byte(testSecret), 0)
	require.NoError(t, err)

	for _, bad := range []string{
		"",
		"garbage",
		"a.b",
		"a.b.c.d",
		"!!!.###.$$$",
	} {
		_, err := c.Verify(bad)
		require.ErrorIs(t, err, ErrTokenRejected, "token %q", bad)
	}
}

func TestCodec_EmptySubject(t *testing.T) {
	t.Parallel()

	_, err := (&Codec{secret: []byte(testSecret), defaultTTL: time.Minute, now: time.Now}).Issue("", 0)
	require.Error(t, err)
}
