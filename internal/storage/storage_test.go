package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthasastry/notes-app/internal/config"
	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/storage/memstore"
	"github.com/parthasastry/notes-app/internal/storage/redisstore"
)

func TestOpenMemory(t *testing.T) {
	b, err := Open(context.Background(), config.Config{Store: config.StoreMemory}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memstore.Notes{}, b.Notes)
	assert.IsType(t, &memstore.Profiles{}, b.Profiles)
	assert.NoError(t, b.Close())
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	b, err := Open(ctx, config.Config{Store: config.StoreRedis, RedisAddr: mr.Addr(), RedisPrefix: "t"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	assert.IsType(t, &redisstore.Notes{}, b.Notes)

	svc := &note.Service{Store: b.Notes}
	n, err := svc.Create(ctx, "alice@example.com", note.CreateInput{Title: "x"})
	require.NoError(t, err)
	assert.True(t, mr.Exists("t:alice@example.com:note:"+n.NoteID))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), config.Config{Store: "sqlite"}, zerolog.Nop())
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = Open(context.Background(), config.Config{Store: config.StoreRedis, RedisAddr: addr}, zerolog.Nop())
	assert.Error(t, err)
}

func TestMigrateNoop(t *testing.T) {
	assert.NoError(t, Migrate(context.Background(), config.Config{Store: config.StoreMemory}, zerolog.Nop()))
}
