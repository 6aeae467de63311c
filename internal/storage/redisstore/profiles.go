package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parthasastry/notes-app/internal/profile"
)

type Profiles struct {
	rdb    *redis.Client
	prefix string
}

func NewProfiles(rdb *redis.Client, prefix string) *Profiles {
	if prefix == "" {
		prefix = "notes"
	}
	return &Profiles{rdb: rdb, prefix: prefix}
}

func (s *Profiles) key(email string) string {
	return fmt.Sprintf("%s:user:%s", s.prefix, email)
}

type profileDoc struct {
	Email         string     `json:"email"`
	CognitoSub    string     `json:"cognito_sub"`
	Name          string     `json:"name"`
	GivenName     string     `json:"given_name"`
	FamilyName    string     `json:"family_name"`
	AccountStatus string     `json:"account_status"`
	NotesCount    int        `json:"notes_count"`
	LastNoteDate  *time.Time `json:"last_note_date"`
	LastLogin     time.Time  `json:"last_login"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (s *Profiles) Create(ctx context.Context, p profile.Profile) error {
	b, err := json.Marshal(profileDoc(p))
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, s.key(p.Email), b, 0).Result()
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if !ok {
		return profile.ErrExists
	}
	return nil
}

func (s *Profiles) Get(ctx context.Context, email string) (profile.Profile, error) {
	val, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return profile.Profile{}, profile.ErrNotFound
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	var d profileDoc
	if err := json.Unmarshal(val, &d); err != nil {
		return profile.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile.Profile(d), nil
}
