package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/cryptox"
	"github.com/yamatodev/dashboard/pkg/idx"
	"github.com/yamatodev/dashboard/pkg/jwtx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrEmailTaken         = errors.New("email_taken")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrPasswordTooShort   = errors.New("password_too_short")
)

// MinPasswordLength applies to registration and password changes, never to
// verification of existing credentials.
const MinPasswordLength = 8

// AuthService owns credential verification, registration, token issuance and
// token resolution. Tokens carry the user's email as subject, so resolving a
// token is a verify plus a user lookup.
type AuthService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Codec  *jwtx.Codec
}

// TokenPair is what login hands back to the client.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}

// Authenticate verifies an email/password pair and issues an access token.
//
// A missing user and a wrong password both return ErrInvalidCredentials so
// responses never reveal which half was wrong. A disabled account fails the
// same way at login; the distinct ErrAccountDisabled only surfaces once a
// valid token meets a deactivated account.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (TokenPair, error) {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash anyway so the timing of the response does not
			// depend on whether the account exists.
			_ = s.Hasher.Verify(password, cryptox.DummyHash)
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := s.Hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return TokenPair{}, ErrInvalidCredentials
		}
		log.Error("password verify failed", "error", err)
		return TokenPair{}, err
	}

	if !user.IsActive {
		return TokenPair{}, ErrInvalidCredentials
	}

	token, err := s.Codec.Issue(user.Email, 0)
	if err != nil {
		return TokenPair{}, err
	}

	log.Info("user authenticated", "user_id", user.ID)

	return TokenPair{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.Codec.DefaultTTL().Seconds()),
	}, nil
}

// RegisterParams are the inputs for creating an account.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates a new active account. Uniqueness is enforced by the store;
// conflicts come back as ErrUsernameTaken or ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	p.Email = NormalizeEmail(p.Email)
	p.Username = strings.TrimSpace(p.Username)

	if len(p.Password) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			switch conflict.Field {
			case "email":
				return domain.User{}, ErrEmailTaken
			case "username":
				return domain.User{}, ErrUsernameTaken
			}
		}
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
// Existing tokens remain valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	log := slogx.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.Hasher.Verify(currentPassword, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	log.Info("password changed", "user_id", userID)
	return nil
}

// ResolveToken verifies an access token and loads the user it names.
//
// Every token failure collapses into jwtx.ErrTokenRejected. A token whose
// subject no longer matches an account also reads as rejected; only a valid
// token pointing at a deactivated account yields ErrAccountDisabled.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (domain.User, error) {
	subject, err := s.Codec.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, jwtx.ErrTokenRejected
		}
		return domain.User{}, err
	}

	if !user.IsActive {
		return domain.User{}, ErrAccountDisabled
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email so lookups stay exact-match.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
