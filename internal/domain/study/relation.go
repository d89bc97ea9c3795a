package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkspaceItemRelation is a labeled directed edge between two items of the same
// document, independent of the parent/child tree.
type WorkspaceItemRelation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;column:document_id;not null;index" json:"document_id"`
	SourceID   uuid.UUID `gorm:"type:uuid;column:source_id;not null;index" json:"source_id"`
	TargetID   uuid.UUID `gorm:"type:uuid;column:target_id;not null;index" json:"target_id"`
	Label      string    `gorm:"column:label" json:"label"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (WorkspaceItemRelation) TableName() string { return "workspace_item_relation" }

func (r *WorkspaceItemRelation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Touches reports whether either endpoint is id.
func (r *WorkspaceItemRelation) Touches(id uuid.UUID) bool {
	return r.SourceID == id || r.TargetID == id
}
