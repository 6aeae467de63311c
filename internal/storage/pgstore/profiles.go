package pgstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parthasastry/notes-app/internal/profile"
)

type Profiles struct {
	DB *gorm.DB
}

func (s *Profiles) Create(ctx context.Context, p profile.Profile) error {
	rec := ProfileRecord{
		Email:         p.Email,
		CognitoSub:    p.CognitoSub,
		Name:          p.Name,
		GivenName:     p.GivenName,
		FamilyName:    p.FamilyName,
		AccountStatus: p.AccountStatus,
		NotesCount:    p.NotesCount,
		LastNoteDate:  p.LastNoteDate,
		LastLogin:     p.LastLogin,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec)
	if res.Error != nil {
		return fmt.Errorf("insert profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return profile.ErrExists
	}
	return nil
}

func (s *Profiles) Get(ctx context.Context, email string) (profile.Profile, error) {
	var rec ProfileRecord
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profile.Profile{}, profile.ErrNotFound
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile.Profile{
		Email:         rec.Email,
		CognitoSub:    rec.CognitoSub,
		Name:          rec.Name,
		GivenName:     rec.GivenName,
		FamilyName:    rec.FamilyName,
		AccountStatus: rec.AccountStatus,
		NotesCount:    rec.NotesCount,
		LastNoteDate:  rec.LastNoteDate,
		LastLogin:     rec.LastLogin.UTC(),
		CreatedAt:     rec.CreatedAt.UTC(),
		UpdatedAt:     rec.UpdatedAt.UTC(),
	}, nil
}
