package note

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("note not found")

// Store persists notes under their (owner, id) key.
//
// Update and Delete are guarded: they fail with ErrNotFound when no item exists
// for the key and never create one. List returns the owner's partition in
// reverse write order.
type Store interface {
	Put(ctx context.Context, n Note) error
	Get(ctx context.Context, ownerID, noteID string) (Note, error)
	List(ctx context.Context, ownerID string) ([]Note, error)
	Update(ctx context.Context, ownerID, noteID string, p Patch, updatedAt time.Time) (Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
}
