package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/parthasastry/notes-app/internal/note"
)

type Notes struct {
	DB *gorm.DB
}

func (s *Notes) Put(ctx context.Context, n note.Note) error {
	rec := toRecord(n)
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *Notes) Get(ctx context.Context, ownerID, noteID string) (note.Note, error) {
	var rec NoteRecord
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND note_id = ?", ownerID, noteID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return note.Note{}, note.ErrNotFound
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("get note: %w", err)
	}
	return fromRecord(rec), nil
}

func (s *Notes) List(ctx context.Context, ownerID string) ([]note.Note, error) {
	var rows []NoteRecord
	if err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("note_id desc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	out := make([]note.Note, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRecord(r))
	}
	return out, nil
}

func (s *Notes) Update(ctx context.Context, ownerID, noteID string, p note.Patch, updatedAt time.Time) (note.Note, error) {
	set := map[string]any{"updated_at": updatedAt}
	if p.Title.Set {
		set["title"] = p.Title.Value
	}
	if p.Content.Set {
		set["content"] = p.Content.Value
	}
	if p.Tags.Set {
		set["tags"] = tagsArray(p.Tags.Value)
	}

	var rec NoteRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&NoteRecord{}).
			Where("owner_id = ? AND note_id = ?", ownerID, noteID).
			Updates(set)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return note.ErrNotFound
		}
		return tx.Where("owner_id = ? AND note_id = ?", ownerID, noteID).First(&rec).Error
	})
	if errors.Is(err, note.ErrNotFound) {
		return note.Note{}, err
	}
	if err != nil {
		return note.Note{}, fmt.Errorf("update note: %w", err)
	}
	return fromRecord(rec), nil
}

func (s *Notes) Delete(ctx context.Context, ownerID, noteID string) error {
	res := s.DB.WithContext(ctx).
		Where("owner_id = ? AND note_id = ?", ownerID, noteID).
		Delete(&NoteRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return note.ErrNotFound
	}
	return nil
}

func toRecord(n note.Note) NoteRecord {
	return NoteRecord{
		OwnerID:   n.OwnerID,
		NoteID:    n.NoteID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tagsArray(n.Tags),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func fromRecord(r NoteRecord) note.Note {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return note.Note{
		OwnerID:   r.OwnerID,
		NoteID:    r.NoteID,
		Title:     r.Title,
		Content:   r.Content,
		Tags:      tags,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func tagsArray(tags []string) pq.StringArray {
	if tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(tags)
}
