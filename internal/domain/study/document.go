package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultCategory = "Uncategorized"

// Document owns every WorkspaceItem, WorkspaceItemRelation and LearningObjective
// that references it.
type Document struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Filename         string         `gorm:"column:filename;not null" json:"filename"`
	Category         string         `gorm:"column:category;not null" json:"category"`
	ExtractedContent string         `gorm:"column:extracted_content;type:text" json:"extracted_content,omitempty"`
	UserSummary      string         `gorm:"column:user_summary;type:text" json:"user_summary,omitempty"`
	Keywords         datatypes.JSON `gorm:"column:keywords" json:"keywords,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Document) TableName() string { return "document" }

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	return nil
}
