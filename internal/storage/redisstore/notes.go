// Package redisstore keeps notes in Redis.
//
// Layout per owner:
//
//	{prefix}:{owner}:note:{id}  JSON document
//	{prefix}:{owner}:index      ZSET of note ids scored by write sequence
//	{prefix}:{owner}:seq        write sequence counter
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parthasastry/notes-app/internal/note"
)

// maxTxRetries bounds optimistic WATCH retries on a contended key.
const maxTxRetries = 5

type noteDoc struct {
	OwnerID   string   `json:"owner_id"`
	NoteID    string   `json:"note_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type Notes struct {
	rdb    *redis.Client
	prefix string
}

func NewNotes(rdb *redis.Client, prefix string) *Notes {
	if prefix == "" {
		prefix = "notes"
	}
	return &Notes{rdb: rdb, prefix: prefix}
}

func (s *Notes) noteKey(ownerID, noteID string) string {
	return fmt.Sprintf("%s:%s:note:%s", s.prefix, ownerID, noteID)
}

func (s *Notes) indexKey(ownerID string) string {
	return fmt.Sprintf("%s:%s:index", s.prefix, ownerID)
}

func (s *Notes) seqKey(ownerID string) string {
	return fmt.Sprintf("%s:%s:seq", s.prefix, ownerID)
}

func (s *Notes) Put(ctx context.Context, n note.Note) error {
	b, err := json.Marshal(toDoc(n))
	if err != nil {
		return fmt.Errorf("marshal note: %w", err)
	}

	seq, err := s.rdb.Incr(ctx, s.seqKey(n.OwnerID)).Result()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.noteKey(n.OwnerID, n.NoteID), b, 0)
		pipe.ZAdd(ctx, s.indexKey(n.OwnerID), redis.Z{Score: float64(seq), Member: n.NoteID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("put note: %w", err)
	}
	return nil
}

func (s *Notes) Get(ctx context.Context, ownerID, noteID string) (note.Note, error) {
	val, err := s.rdb.Get(ctx, s.noteKey(ownerID, noteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return note.Note{}, note.ErrNotFound
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("get note: %w", err)
	}
	return decode(val)
}

func (s *Notes) List(ctx context.Context, ownerID string) ([]note.Note, error) {
	ids, err := s.rdb.ZRevRange(ctx, s.indexKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list index: %w", err)
	}
	out := make([]note.Note, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.noteKey(ownerID, id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	for _, v := range vals {
		// deleted between ZREVRANGE and MGET
		str, ok := v.(string)
		if !ok {
			continue
		}
		n, err := decode([]byte(str))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Notes) Update(ctx context.Context, ownerID, noteID string, p note.Patch, updatedAt time.Time) (note.Note, error) {
	key := s.noteKey(ownerID, noteID)
	var out note.Note

	txf := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return note.ErrNotFound
		}
		if err != nil {
			return err
		}
		cur, err := decode(val)
		if err != nil {
			return err
		}

		n := p.Apply(cur)
		n.UpdatedAt = updatedAt
		b, err := json.Marshal(toDoc(n))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		if err == nil {
			out = n
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, note.ErrNotFound) {
			return note.Note{}, err
		}
		if err != nil {
			return note.Note{}, fmt.Errorf("update note: %w", err)
		}
		return out, nil
	}
	return note.Note{}, fmt.Errorf("update note: %w", redis.TxFailedErr)
}

func (s *Notes) Delete(ctx context.Context, ownerID, noteID string) error {
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.noteKey(ownerID, noteID))
		pipe.ZRem(ctx, s.indexKey(ownerID), noteID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if del.Val() == 0 {
		return note.ErrNotFound
	}
	return nil
}

func toDoc(n note.Note) noteDoc {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteDoc{
		OwnerID:   n.OwnerID,
		NoteID:    n.NoteID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: note.FormatTime(n.CreatedAt),
		UpdatedAt: note.FormatTime(n.UpdatedAt),
	}
}

func decode(b []byte) (note.Note, error) {
	var d noteDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return note.Note{}, fmt.Errorf("decode note: %w", err)
	}
	created, err := note.ParseTime(d.CreatedAt)
	if err != nil {
		return note.Note{}, fmt.Errorf("note %s created_at: %w", d.NoteID, err)
	}
	updated, err := note.ParseTime(d.UpdatedAt)
	if err != nil {
		return note.Note{}, fmt.Errorf("note %s updated_at: %w", d.NoteID, err)
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return note.Note{
		OwnerID:   d.OwnerID,
		NoteID:    d.NoteID,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      tags,
		CreatedAt: created.UTC(),
		UpdatedAt: updated.UTC(),
	}, nil
}
