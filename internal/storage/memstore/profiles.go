package memstore

import (
	"context"
	"sync"

	"github.com/parthasastry/notes-app/internal/profile"
)

type Profiles struct {
	mu    sync.RWMutex
	byKey map[string]profile.Profile
}

func NewProfiles() *Profiles {
	return &Profiles{byKey: make(map[string]profile.Profile)}
}

func (s *Profiles) Create(_ context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byKey[p.Email]; ok {
		return profile.ErrExists
	}
	s.byKey[p.Email] = p
	return nil
}

func (s *Profiles) Get(_ context.Context, email string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byKey[email]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}
