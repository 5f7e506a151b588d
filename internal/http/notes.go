package http

import (
	"errors"
	"net/http"

	"github.com/jotmail/jotmail/internal/service"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/httpx"
	"github.com/jotmail/jotmail/pkg/slogx"
)

// NotesHandler handles the note CRUD endpoints. Every route sits behind
// the session guard, so the account ID is always in context here.
type NotesHandler struct {
	NoteService *service.NoteService
}

// HandleCreate handles POST /notes
//
//	@Summary		Create a note
//	@Description	Creates a note owned by the authenticated account. Title is required, content may be empty.
//	@Tags			Notes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		NoteCreateRequest	true	"title and content"
//	@Success		201		{object}	NoteResponse		"the created note"
//	@Failure		400		{object}	APIError			"invalid_request"
//	@Failure		401		{object}	APIError			"missing or invalid session token"
//	@Failure		500		{object}	APIError			"internal error"
//	@Router			/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		ErrServerError.WriteError(w)
		return
	}

	var req NoteCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.NoteService.CreateNote(ctx, accountID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			ErrInvalidRequest.WriteError(w)
			return
		}
		log.Error("create note failed", "account_id", accountID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, noteResponse(note))
}

// HandleList handles GET /notes
//
//	@Summary		List notes
//	@Description	Lists the authenticated account's notes, newest first. Other accounts' notes are never visible.
//	@Tags			Notes
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	NoteListResponse	"the account's notes"
//	@Failure		401	{object}	APIError			"missing or invalid session token"
//	@Failure		500	{object}	APIError			"internal error"
//	@Router			/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		ErrServerError.WriteError(w)
		return
	}

	notes, err := h.NoteService.ListNotes(ctx, accountID)
	if err != nil {
		log.Error("list notes failed", "account_id", accountID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	resp := NoteListResponse{Notes: make([]NoteResponse, 0, len(notes))}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, noteResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /notes/{id}
//
//	@Summary		Delete a note
//	@Description	Deletes a note owned by the authenticated account. A note owned by someone else reads as not found.
//	@Tags			Notes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"note id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	APIError	"missing or invalid session token"
//	@Failure		404	{object}	APIError	"not_found"
//	@Failure		500	{object}	APIError	"internal error"
//	@Router			/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if accountID == "" {
		ErrServerError.WriteError(w)
		return
	}

	noteID := r.PathValue("id")
	if noteID == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.NoteService.DeleteNote(ctx, accountID, noteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ErrNotFound.WriteError(w)
			return
		}
		log.Error("delete note failed", "account_id", accountID, "note_id", noteID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
