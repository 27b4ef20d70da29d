package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/internal/dashboard/store/drivers/sqlite"
	"github.com/yamatodev/dashboard/pkg/cryptox"
	"github.com/yamatodev/dashboard/pkg/jwtx"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()

	codec, err := jwtx.NewCodec(jwtx.AlgHS256, []byte("test-secret-key"), 30*time.Minute)
	require.NoError(t, err)

	return &AuthService{
		Store:  newTestStore(t),
		Hasher: cryptox.NewHasher(cryptox.WithParams(8*1024, 1, 1)),
		Codec:  codec,
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "email should be normalized")
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	pair, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, int64(1800), pair.ExpiresIn)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Store.Users().SetUserActive(ctx, user.ID, false))

	// Login on a disabled account is indistinguishable from bad credentials.
	_, err = svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "other@example.com",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.Register(context.Background(), RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestResolveToken(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	pair, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, err := svc.ResolveToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestResolveTokenGarbage(t *testing.T) {
	svc := newTestAuth(t)

	_, err := svc.ResolveToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, jwtx.ErrTokenRejected)
}

func TestResolveTokenDisabledAccount(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	pair, err := svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Store.Users().SetUserActive(ctx, user.ID, false))

	_, err = svc.ResolveToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestResolveTokenUnknownSubject(t *testing.T) {
	svc := newTestAuth(t)

	// Issue a token for an email with no matching account.
	token, err := svc.Codec.Issue("ghost@example.com", 0)
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, jwtx.ErrTokenRejected)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	// Wrong current password is refused.
	err = svc.ChangePassword(ctx, user.ID, "wrong-pass", "brand-new-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Too-short replacement is refused before touching the store.
	err = svc.ChangePassword(ctx, user.ID, "s3cret-pass", "tiny")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cret-pass", "brand-new-pass"))

	_, err = svc.Authenticate(ctx, "alice@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "alice@example.com", "brand-new-pass")
	assert.NoError(t, err)
}
