package http

import (
	"errors"
	"net/http"

	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/pkg/httpx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// LoginHandler handles the two-step login flow for existing accounts.
type LoginHandler struct {
	AuthService *service.AuthService
}

// HandleRequestOTP handles POST /auth/request-otp
//
//	@Summary		Request a login code
//	@Description	Emails a one-time code to an existing account. Requesting again replaces the previous code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginOTPRequest	true	"account email"
//	@Success		200		{object}	SuccessResponse	"code sent"
//	@Failure		400		{object}	APIError		"invalid_email or invalid_request"
//	@Failure		404		{object}	APIError		"account_not_found"
//	@Failure		500		{object}	APIError		"internal error"
//	@Router			/auth/request-otp [post].
func (h *LoginHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.RequestLoginOTP(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			ErrAccountNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			ErrInvalidEmail.WriteError(w)
		default:
			log.Error("login otp request failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HandleComplete handles POST /auth/login
//
//	@Summary		Complete login with a code
//	@Description	Exchanges (email, otp) for a session token. The code is consumed on success and can't be replayed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"email and one-time code"
//	@Success		200		{object}	TokenResponse	"session token"
//	@Failure		400		{object}	APIError		"invalid_credentials or invalid_otp"
//	@Failure		500		{object}	APIError		"internal error"
//	@Router			/auth/login [post].
func (h *LoginHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, _, err := h.AuthService.CompleteLogin(ctx, req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidEmail):
			ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrInvalidOTP):
			ErrInvalidOTP.WriteError(w)
		default:
			log.Error("login completion failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		Success:   true,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.AuthService.Sessions.TTL().Seconds()),
	})
}
