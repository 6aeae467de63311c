package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthasastry/notes-app/internal/profile"
	"github.com/parthasastry/notes-app/internal/storage/memstore"
)

func TestConfirm(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	store := memstore.NewProfiles()
	svc := &profile.Service{Store: store, Now: func() time.Time { return now }}
	ctx := context.Background()

	created, err := svc.Confirm(ctx, profile.Confirmation{
		UserName: "user-1",
		Attributes: map[string]string{
			"sub":         "sub-1",
			"email":       "alice@example.com",
			"given_name":  "Alice",
			"family_name": "Liddell",
		},
	})
	require.NoError(t, err)
	assert.True(t, created)

	p, err := store.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, profile.Profile{
		Email:         "alice@example.com",
		CognitoSub:    "sub-1",
		Name:          "Alice Liddell",
		GivenName:     "Alice",
		FamilyName:    "Liddell",
		AccountStatus: profile.StatusActive,
		LastLogin:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, p)

	created, err = svc.Confirm(ctx, profile.Confirmation{
		UserName:   "user-1",
		Attributes: map[string]string{"sub": "sub-2", "email": "alice@example.com", "given_name": "Other"},
	})
	require.NoError(t, err)
	assert.False(t, created)

	p, err = store.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", p.Name)
}

func TestConfirmNameFallbacks(t *testing.T) {
	store := memstore.NewProfiles()
	svc := &profile.Service{Store: store}
	ctx := context.Background()

	_, err := svc.Confirm(ctx, profile.Confirmation{
		UserName:   "user-2",
		Attributes: map[string]string{"email": "bob@example.com"},
	})
	require.NoError(t, err)
	p, err := store.Get(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.Name)
	assert.Equal(t, "user-2", p.CognitoSub)

	_, err = svc.Confirm(ctx, profile.Confirmation{
		Attributes: map[string]string{"sub": "s", "email": "carol@example.com", "family_name": "Danvers"},
	})
	require.NoError(t, err)
	p, err = store.Get(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Danvers", p.Name)
}

func TestConfirmSkipsAndRejects(t *testing.T) {
	svc := &profile.Service{Store: memstore.NewProfiles()}
	ctx := context.Background()

	created, err := svc.Confirm(ctx, profile.Confirmation{UserName: "user-3"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.Confirm(ctx, profile.Confirmation{Attributes: map[string]string{"email": "x@example.com"}})
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Confirm(ctx, profile.Confirmation{Attributes: map[string]string{"sub": "s", "email": "  "}})
	assert.ErrorIs(t, err, profile.ErrMissingEmail)
}
