package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testHasher uses cheap parameters so the suite stays fast.
func testHasher(opts ...HasherOption) *Hasher {
	return NewHasher(append([]HasherOption{WithParams(8*1024, 1, 1)}, opts...)...)
}

func TestHash_PHCFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "パスワード🔒"},
	}

	h := testHasher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Contains(t, parts[3], "m=")
			require.Contains(t, parts[3], "t=")
			require.Contains(t, parts[3], "p=")
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	t.Parallel()

	h := testHasher()
	password := "samepassword"

	hash1, err := h.Hash(password)
	require.NoError(t, err)
	hash2, err := h.Hash(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	require.NoError(t, h.Verify(password, hash1))
	require.NoError(t, h.Verify(password, hash2))
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := testHasher()
	hash, err := h.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		strings.Repeat("x", 10000),
	} {
		err := h.Verify(wrong, hash)
		require.ErrorIs(t, err, ErrPasswordMismatch)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := testHasher()
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"plaintext leaked into column", "Secret123"},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=8192"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!"},
		{"wrong version", "$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must return an error, never panic into the caller.
			err := h.Verify("test-password", tt.invalidHash)
			require.Error(t, err)
		})
	}
}

func TestVerify_DifferentParameters(t *testing.T) {
	t.Parallel()

	// A hash produced with one set of cost parameters must still verify,
	// since the parameters are embedded in the PHC string.
	old := NewHasher(WithParams(16*1024, 2, 1))
	hash, err := old.Hash("migrating-password")
	require.NoError(t, err)

	current := testHasher()
	require.NoError(t, current.Verify("migrating-password", hash))
}

func TestVerify_PepperChangesHash(t *testing.T) {
	t.Parallel()

	plain := testHasher()
	peppered := testHasher(WithPepper("server-side-secret"))

	hash, err := peppered.Hash("password123")
	require.NoError(t, err)

	require.NoError(t, peppered.Verify("password123", hash))
	require.ErrorIs(t, plain.Verify("password123", hash), ErrPasswordMismatch)
}
