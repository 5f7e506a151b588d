package http

import (
	"errors"
	"net/http"

	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/httpx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// MeHandler resolves the session token back to its account.
type MeHandler struct {
	AuthService *service.AuthService
}

// HandleGet handles GET /auth/me
//
//	@Summary		Identify the caller
//	@Description	Returns the account behind the bearer token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	AccountResponse	"the authenticated account"
//	@Failure		401	{object}	APIError		"missing or invalid session token"
//	@Failure		500	{object}	APIError		"internal error"
//	@Router			/auth/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		ErrServerError.WriteError(w)
		return
	}

	account, err := h.AuthService.GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A valid token for a vanished account; sessions are stateless
			// so deletion doesn't revoke them. The token just no longer
			// identifies anyone.
			log.Warn("valid session for missing account", "account_id", accountID)
			ErrUnauthenticated.WriteError(w)
			return
		}
		log.Error("account lookup failed", "account_id", accountID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountResponse(account))
}
