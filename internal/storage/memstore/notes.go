package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/parthasastry/notes-app/internal/note"
)

type entry struct {
	note note.Note
	seq  uint64
}

// Notes is an in-process note.Store. Each owner's partition is a map keyed by
// note id; seq records write order for List.
type Notes struct {
	mu    sync.RWMutex
	seq   uint64
	owner map[string]map[string]entry
}

func NewNotes() *Notes {
	return &Notes{owner: make(map[string]map[string]entry)}
}

func (s *Notes) Put(_ context.Context, n note.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	part, ok := s.owner[n.OwnerID]
	if !ok {
		part = make(map[string]entry)
		s.owner[n.OwnerID] = part
	}
	s.seq++
	part[n.NoteID] = entry{note: clone(n), seq: s.seq}
	return nil
}

func (s *Notes) Get(_ context.Context, ownerID, noteID string) (note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.owner[ownerID][noteID]
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	return clone(e.note), nil
}

func (s *Notes) List(_ context.Context, ownerID string) ([]note.Note, error) {
	s.mu.RLock()
	part := s.owner[ownerID]
	entries := make([]entry, 0, len(part))
	for _, e := range part {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	out := make([]note.Note, 0, len(entries))
	for _, e := range entries {
		out = append(out, clone(e.note))
	}
	return out, nil
}

func (s *Notes) Update(_ context.Context, ownerID, noteID string, p note.Patch, updatedAt time.Time) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.owner[ownerID][noteID]
	if !ok {
		return note.Note{}, note.ErrNotFound
	}
	n := p.Apply(e.note)
	n.UpdatedAt = updatedAt
	e.note = clone(n)
	s.owner[ownerID][noteID] = e
	return clone(n), nil
}

func (s *Notes) Delete(_ context.Context, ownerID, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	part := s.owner[ownerID]
	if _, ok := part[noteID]; !ok {
		return note.ErrNotFound
	}
	delete(part, noteID)
	if len(part) == 0 {
		delete(s.owner, ownerID)
	}
	return nil
}

func clone(n note.Note) note.Note {
	if n.Tags != nil {
		n.Tags = append(make([]string, 0, len(n.Tags)), n.Tags...)
	}
	return n
}
