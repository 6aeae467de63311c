// Package storetest holds behaviour checks every note.Store and profile.Store
// backend must pass.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/profile"
)

var base = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func sample(owner string, i int) note.Note {
	ts := base.Add(time.Duration(i) * time.Second)
	return note.Note{
		OwnerID:   owner,
		NoteID:    fmt.Sprintf("018f0000-0000-7000-8000-%012d", i),
		Title:     fmt.Sprintf("title %d", i),
		Content:   fmt.Sprintf("content %d", i),
		Tags:      []string{"b", "a"},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func requireSameNote(t *testing.T, want, got note.Note) {
	t.Helper()
	assert.Equal(t, want.OwnerID, got.OwnerID)
	assert.Equal(t, want.NoteID, got.NoteID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.Equal(t, want.Tags, got.Tags)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %s got %s", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updated_at: want %s got %s", want.UpdatedAt, got.UpdatedAt)
}

// RunNotes exercises a note.Store. newStore must return an empty store.
func RunNotes(t *testing.T, newStore func(t *testing.T) note.Store) {
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		require.NoError(t, s.Put(ctx, n))

		got, err := s.Get(ctx, n.OwnerID, n.NoteID)
		require.NoError(t, err)
		requireSameNote(t, n, got)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "alice@example.com", "nope")
		assert.ErrorIs(t, err, note.ErrNotFound)
	})

	t.Run("empty tags survive", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		n.Tags = []string{}
		require.NoError(t, s.Put(ctx, n))

		got, err := s.Get(ctx, n.OwnerID, n.NoteID)
		require.NoError(t, err)
		assert.Empty(t, got.Tags)
	})

	t.Run("list newest first", func(t *testing.T) {
		s := newStore(t)
		for i := 1; i <= 3; i++ {
			require.NoError(t, s.Put(ctx, sample("alice@example.com", i)))
		}

		got, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, sample("", 3).NoteID, got[0].NoteID)
		assert.Equal(t, sample("", 2).NoteID, got[1].NoteID)
		assert.Equal(t, sample("", 1).NoteID, got[2].NoteID)
	})

	t.Run("list empty partition", func(t *testing.T) {
		s := newStore(t)
		got, err := s.List(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		require.NoError(t, s.Put(ctx, n))

		_, err := s.Get(ctx, "bob@example.com", n.NoteID)
		assert.ErrorIs(t, err, note.ErrNotFound)

		got, err := s.List(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = s.Update(ctx, "bob@example.com", n.NoteID, note.Patch{Title: note.Some("x")}, base)
		assert.ErrorIs(t, err, note.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "bob@example.com", n.NoteID), note.ErrNotFound)

		still, err := s.Get(ctx, n.OwnerID, n.NoteID)
		require.NoError(t, err)
		requireSameNote(t, n, still)
	})

	t.Run("update merges present fields", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		require.NoError(t, s.Put(ctx, n))

		later := n.CreatedAt.Add(time.Minute)
		got, err := s.Update(ctx, n.OwnerID, n.NoteID, note.Patch{Tags: note.Some([]string{"z"})}, later)
		require.NoError(t, err)

		want := n
		want.Tags = []string{"z"}
		want.UpdatedAt = later
		requireSameNote(t, want, got)

		reread, err := s.Get(ctx, n.OwnerID, n.NoteID)
		require.NoError(t, err)
		requireSameNote(t, want, reread)
	})

	t.Run("update clears with explicit empty values", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		require.NoError(t, s.Put(ctx, n))

		got, err := s.Update(ctx, n.OwnerID, n.NoteID, note.Patch{
			Title: note.Some(""),
			Tags:  note.Some([]string{}),
		}, n.CreatedAt)
		require.NoError(t, err)
		assert.Equal(t, "", got.Title)
		assert.Equal(t, n.Content, got.Content)
		assert.Empty(t, got.Tags)
	})

	t.Run("update missing does not upsert", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Update(ctx, "alice@example.com", "ghost", note.Patch{Title: note.Some("x")}, base)
		assert.ErrorIs(t, err, note.ErrNotFound)

		_, err = s.Get(ctx, "alice@example.com", "ghost")
		assert.ErrorIs(t, err, note.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		n := sample("alice@example.com", 1)
		require.NoError(t, s.Put(ctx, n))

		require.NoError(t, s.Delete(ctx, n.OwnerID, n.NoteID))
		_, err := s.Get(ctx, n.OwnerID, n.NoteID)
		assert.ErrorIs(t, err, note.ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, n.OwnerID, n.NoteID), note.ErrNotFound)

		got, err := s.List(ctx, n.OwnerID)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// RunProfiles exercises a profile.Store. newStore must return an empty store.
func RunProfiles(t *testing.T, newStore func(t *testing.T) profile.Store) {
	ctx := context.Background()

	p := profile.Profile{
		Email:         "alice@example.com",
		CognitoSub:    "sub-1",
		Name:          "Alice Liddell",
		GivenName:     "Alice",
		FamilyName:    "Liddell",
		AccountStatus: profile.StatusActive,
		LastLogin:     base,
		CreatedAt:     base,
		UpdatedAt:     base,
	}

	t.Run("create then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Create(ctx, p))

		got, err := s.Get(ctx, p.Email)
		require.NoError(t, err)
		assert.Equal(t, p.CognitoSub, got.CognitoSub)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, profile.StatusActive, got.AccountStatus)
		assert.Nil(t, got.LastNoteDate)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("duplicate", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Create(ctx, p))

		dup := p
		dup.CognitoSub = "sub-2"
		assert.ErrorIs(t, s.Create(ctx, dup), profile.ErrExists)

		got, err := s.Get(ctx, p.Email)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", got.CognitoSub)
	})

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, profile.ErrNotFound)
	})
}
