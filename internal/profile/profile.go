// Package profile records a user profile once signup is confirmed. It never
// touches note data.
package profile

import (
	"context"
	"errors"
	"time"
)

var (
	ErrExists       = errors.New("profile already exists")
	ErrNotFound     = errors.New("profile not found")
	ErrMissingEmail = errors.New("email is required")
)

const StatusActive = "active"

type Profile struct {
	Email         string
	CognitoSub    string
	Name          string
	GivenName     string
	FamilyName    string
	AccountStatus string

	NotesCount   int
	LastNoteDate *time.Time

	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store creates profiles keyed by email. Create fails with ErrExists when a
// profile for the email is already present.
type Store interface {
	Create(ctx context.Context, p Profile) error
	Get(ctx context.Context, email string) (Profile, error)
}
