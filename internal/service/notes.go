package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/internal/store"
	"github.com/jotmail/jotmail/pkg/idx"
)

// NoteService is plain ownership-scoped record storage; every operation
// takes the authenticated account ID and never crosses it.
type NoteService struct {
	Store store.Store
}

func (s *NoteService) CreateNote(ctx context.Context, accountID, title, content string) (domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Note{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	note := domain.Note{
		ID:        idx.New().String(),
		AccountID: accountID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		return domain.Note{}, fmt.Errorf("create note: %w", err)
	}

	return note, nil
}

func (s *NoteService) ListNotes(ctx context.Context, accountID string) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesByAccount(ctx, accountID)
}

// DeleteNote removes a note owned by the account. store.ErrNotFound
// covers both a missing note and someone else's note.
func (s *NoteService) DeleteNote(ctx context.Context, accountID, noteID string) error {
	return s.Store.Notes().DeleteNote(ctx, noteID, accountID)
}
