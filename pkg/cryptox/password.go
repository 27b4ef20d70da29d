package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Default Argon2id parameters (RFC 9106 low-memory profile).
const (
	defaultMemory      = 19 * 1024 // KiB (19 MiB)
	defaultIterations  = 2
	defaultParallelism = 1
	keyLength          = 32
	saltLength         = 16
)

// DummyHash is a well-formed Argon2id hash of an unknowable random password.
// Callers verify against it when the account does not exist, keeping login
// timing independent of account existence.
const DummyHash = "$argon2id$v=19$m=19456,t=2,p=1$c29tZXNhbHRzb21lc2FsdA$Wn8+Yk4nWHJR9UyUlhNQ3+KKRans7utf+9BSCSzX3mM"

// ErrPasswordMismatch is returned by Verify when the password does not match
// the stored hash. Malformed hashes produce other errors; callers must treat
// any non-nil error as a failed verification.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// Hasher produces and verifies salted Argon2id password hashes in PHC string
// format. An optional pepper is mixed into every hash; it is fixed at
// construction so there is no package-level mutable state.
type Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	pepper      string
}

// HasherOption customizes a Hasher.
type HasherOption func(*Hasher)

// WithPepper mixes a server-side secret into every hash. Losing the pepper
// invalidates all stored hashes.
func WithPepper(pepper string) HasherOption {
	return func(h *Hasher) { h.pepper = pepper }
}

// WithParams overrides the Argon2id cost parameters. Intended for tests that
// want cheaper hashing.
func WithParams(memory, iterations uint32, parallelism uint8) HasherOption {
	return func(h *Hasher) {
		h.memory = memory
		h.iterations = iterations
		h.parallelism = parallelism
	}
}

// NewHasher returns a Hasher with production-grade default parameters.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{
		memory:      defaultMemory,
		iterations:  defaultIterations,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash generates a PHC-format Argon2id hash with a fresh random salt, so two
// calls on the same password yield different strings.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		h.iterations,
		h.memory,
		h.parallelism,
		keyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		h.memory,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compares a plaintext password against a PHC-style Argon2id hash
// using the parameters and salt embedded in the hash string. The comparison
// is constant-time. Corrupted hash strings return an error instead of
// panicking so storage damage degrades to a failed login.
func (h *Hasher) Verify(password, encodedHash string) error {
	// PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := splitPHC(encodedHash)
	if len(parts) != 6 {
		return errors.New("cryptox: invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("cryptox: invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("cryptox: invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid hash format: parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - hash lengths are small
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

func splitPHC(s string) []string {
	parts := make([]string, 0, 6)
	start := 0
	for i := range len(s) {
		if s[i] == '$' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
