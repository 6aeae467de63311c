package note

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNote = errors.New("title or content is required")
	ErrNoChanges = errors.New("no fields to update")
	ErrMissingID = errors.New("note id is required")
)

// Service implements the note lifecycle on top of a Store. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	Store Store

	// Now and NewID default to the wall clock and UUIDv7.
	Now   func() time.Time
	NewID func() (string, error)
}

type CreateInput struct {
	Title   string
	Content string
	Tags    []string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Note, error) {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == "" {
		return Note{}, ErrEmptyNote
	}

	id, err := s.newID()
	if err != nil {
		return Note{}, fmt.Errorf("generate note id: %w", err)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := s.now()
	n := Note{
		OwnerID:   ownerID,
		NoteID:    id,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Put(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

func (s *Service) Get(ctx context.Context, ownerID, noteID string) (Note, error) {
	if noteID == "" {
		return Note{}, ErrMissingID
	}
	return s.Store.Get(ctx, ownerID, noteID)
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Note, error) {
	notes, err := s.Store.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (s *Service) Update(ctx context.Context, ownerID, noteID string, p Patch) (Note, error) {
	if noteID == "" {
		return Note{}, ErrMissingID
	}
	if p.Empty() {
		return Note{}, ErrNoChanges
	}
	return s.Store.Update(ctx, ownerID, noteID, p, s.now())
}

func (s *Service) Delete(ctx context.Context, ownerID, noteID string) error {
	if noteID == "" {
		return ErrMissingID
	}
	return s.Store.Delete(ctx, ownerID, noteID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC().Truncate(time.Millisecond)
	}
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *Service) newID() (string, error) {
	if s.NewID != nil {
		return s.NewID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
