package domain

import "time"

// Note is a private text note owned by exactly one account.
type Note struct {
	ID        string
	AccountID string
	Title     string
	Content   string
	CreatedAt time.Time
}
