package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret is returned by NewCodec when no signing secret is provided.
	// Serving traffic without one would make every token forgeable.
	ErrNoSecret = errors.New("jwtx: signing secret is required")

	// ErrUnsupportedAlgorithm is returned for algorithm identifiers other
	// than HS256.
	ErrUnsupportedAlgorithm = errors.New("jwtx: unsupported signing algorithm")

	// ErrTokenRejected is the single rejection outcome for every
	// verification failure: malformed, bad signature, expired, or missing
	// subject. Callers must not expose which condition occurred; the wrapped
	// cause is for internal logging only.
	ErrTokenRejected = errors.New("jwtx: token rejected")
)

// AlgHS256 is the only signature scheme the codec recognizes.
const AlgHS256 = "HS256"

// Codec signs and verifies compact HS256 tokens with a single symmetric
// secret. The secret is fixed at construction and never mutated; rotating it
// requires a restart and invalidates all outstanding tokens — there is no
// per-token revocation.
type Codec struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithClock overrides the time source, letting tests move past expiry
// without sleeping.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// NewCodec builds a Codec for the given algorithm identifier and secret.
// An empty secret is a configuration error, not a default to paper over.
func NewCodec(algorithm string, secret []byte, defaultTTL time.Duration, opts ...CodecOption) (*Codec, error) {
	if algorithm != AlgHS256 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultAccessTokenTTL
	}

	c := &Codec{
		secret:     secret,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for subject expiring after ttl. A non-positive ttl
// falls back to the codec's issuance default.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("jwtx: empty subject")
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	claims := NewAccessClaims(subject, ttl, c.now().UTC())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks structure, signature and expiry and returns the subject
// claim. Every failure collapses into ErrTokenRejected; the underlying cause
// stays wrapped for logs and never reaches clients.
func (c *Codec) Verify(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{AlgHS256}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenRejected, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid claims", ErrTokenRejected)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenRejected)
	}

	return claims.Subject, nil
}

// DefaultTTL reports the issuance default lifetime.
func (c *Codec) DefaultTTL() time.Duration { return c.defaultTTL }
