package sqlite

import (
	"context"

	"github.com/jotmail/jotmail/internal/domain"
)

type notesRepo struct {
	db dbtx
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, account_id, title, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.AccountID, n.Title, n.Content, toMillis(n.CreatedAt))
	return mapConstraint(err)
}

func (r *notesRepo) ListNotesByAccount(ctx context.Context, accountID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, title, content, created_at
		 FROM notes WHERE account_id = ? ORDER BY id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var (
			n         domain.Note
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Title, &n.Content, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt = fromMillis(createdAt)
		notes = append(notes, n)
	}

	return notes, rows.Err()
}

func (r *notesRepo) DeleteNote(ctx context.Context, noteID, accountID string) error {
	// Ownership is part of the predicate; deleting someone else's note
	// is indistinguishable from deleting a note that never existed.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND account_id = ?`, noteID, accountID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
