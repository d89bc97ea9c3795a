package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceItem is a node in a document's note breakdown. A nil ParentID marks a root.
type WorkspaceItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID  `gorm:"type:uuid;column:document_id;not null;index" json:"document_id"`
	ParentID   *uuid.UUID `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`

	Title       string `gorm:"column:title;not null" json:"title"`
	Content     string `gorm:"column:content;type:text" json:"content,omitempty"`
	UserContent string `gorm:"column:user_content;type:text" json:"user_content,omitempty"`
	Order       int    `gorm:"column:sort_order;not null;default:0" json:"order"`

	Importance   *string `gorm:"column:importance" json:"importance,omitempty"`
	LearningRole *string `gorm:"column:learning_role" json:"learning_role,omitempty"`
	Difficulty   *string `gorm:"column:difficulty" json:"difficulty,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (WorkspaceItem) TableName() string { return "workspace_item" }

func (w *WorkspaceItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (w *WorkspaceItem) HasParent() bool {
	return w.ParentID != nil && *w.ParentID != uuid.Nil
}
