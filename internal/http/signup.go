package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/pkg/httpx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// SignupHandler handles the two-step registration flow.
type SignupHandler struct {
	AuthService *service.AuthService
}

// HandleRequestOTP handles POST /auth/request-signup-otp
//
//	@Summary		Request a signup code
//	@Description	Creates the account and emails it a one-time code. The code is never in the response.
//	@Description	Requesting again replaces the previous code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupOTPRequest	true	"name, email, optional date of birth (YYYY-MM-DD)"
//	@Success		200		{object}	SuccessResponse		"code sent"
//	@Failure		400		{object}	APIError			"account_exists, invalid_email or invalid_request"
//	@Failure		500		{object}	APIError			"internal error"
//	@Router			/auth/request-signup-otp [post].
func (h *SignupHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignupOTPRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(DateFormat, req.DateOfBirth)
		if err != nil {
			ErrInvalidRequest.WriteError(w)
			return
		}
		dob = &parsed
	}

	if err := h.AuthService.RequestSignupOTP(ctx, req.Name, req.Email, dob); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountExists):
			ErrAccountExists.WriteError(w)
		case errors.Is(err, service.ErrInvalidEmail):
			ErrInvalidEmail.WriteError(w)
		case errors.Is(err, service.ErrValidation):
			ErrInvalidRequest.WriteError(w)
		default:
			log.Error("signup otp request failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// HandleComplete handles POST /auth/signup
//
//	@Summary		Complete signup with a code
//	@Description	Exchanges (email, otp) for a session token. The code is consumed on success and can't be replayed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignupRequest	true	"email and one-time code"
//	@Success		200		{object}	TokenResponse	"session token"
//	@Failure		400		{object}	APIError		"invalid_email or invalid_otp"
//	@Failure		500		{object}	APIError		"internal error"
//	@Router			/auth/signup [post].
func (h *SignupHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, _, err := h.AuthService.CompleteSignup(ctx, req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			ErrInvalidEmail.WriteError(w)
		case errors.Is(err, service.ErrInvalidOTP):
			ErrInvalidOTP.WriteError(w)
		default:
			log.Error("signup completion failed", "err", err)
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
