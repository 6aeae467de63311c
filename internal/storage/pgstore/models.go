package pgstore

import (
	"time"

	"github.com/lib/pq"
)

// NoteRecord is one row per note. The composite primary key doubles as the
// owner partition index, ordered by note id.
type NoteRecord struct {
	OwnerID string `gorm:"primaryKey;type:text"`
	NoteID  string `gorm:"primaryKey;type:text"`
	Title   string `gorm:"type:text;not null;default:''"`
	Content string `gorm:"type:text;not null;default:''"`

	Tags pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (NoteRecord) TableName() string { return "notes" }

type ProfileRecord struct {
	Email         string `gorm:"primaryKey;type:text"`
	CognitoSub    string `gorm:"type:text;not null"`
	Name          string `gorm:"type:text;not null;default:''"`
	GivenName     string `gorm:"type:text;not null;default:''"`
	FamilyName    string `gorm:"type:text;not null;default:''"`
	AccountStatus string `gorm:"type:text;not null;default:'active'"`

	NotesCount   int        `gorm:"not null;default:0"`
	LastNoteDate *time.Time `gorm:"type:timestamptz"`

	LastLogin time.Time `gorm:"type:timestamptz;not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (ProfileRecord) TableName() string { return "users" }
