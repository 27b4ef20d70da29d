package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates a new account.
//
//	@Summary		Register a new user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account details"
//	@Success		201		{object}	UserResponse
//	@Failure		400		{object}	httpx.APIError	"Malformed or invalid request"
//	@Failure		409		{object}	httpx.APIError	"Username or email already registered"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	user, err := h.AuthService.Register(ctx, service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.Conflict("email").Write(w)
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.Conflict("username").Write(w)
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.ErrInvalidBody.Write(w)
		default:
			log.Error("register failed", "err", err)
			httpx.ErrServerError.Write(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin exchanges email/password for a bearer token.
//
//	@Summary		Log in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	TokenResponse
//	@Failure		401		{object}	httpx.APIError	"Email or password is incorrect"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	pair, err := h.AuthService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.ErrInvalidCredentials.Write(w)
			return
		}
		log.Error("login failed", "err", err)
		httpx.ErrServerError.Write(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
	})
}

// HandleMe returns the authenticated user's own profile.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpx.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	httpx.APIError	"Account disabled"
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// HandleChangePassword rotates the caller's password after re-verifying the
// current one.
//
//	@Summary		Change password
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body	changePasswordRequest	true	"Current and new password"
//	@Success		204
//	@Failure		400	{object}	httpx.APIError	"New password too short"
//	@Failure		401	{object}	httpx.APIError	"Current password is wrong"
//	@Router			/api/auth/change-password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	err := h.AuthService.ChangePassword(ctx, user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.ErrInvalidCredentials.Write(w)
		case errors.Is(err, service.ErrPasswordTooShort):
			httpx.ErrInvalidBody.Write(w)
		default:
			log.Error("change password failed", "err", err)
			httpx.ErrServerError.Write(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLogout acknowledges the logout. Tokens are stateless and expire on
// their own; the client discards its copy.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	httpx.APIError	"Invalid or missing access token"
//	@Router			/api/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
