package study

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningObjective struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID *uuid.UUID `gorm:"type:uuid;column:document_id;index" json:"document_id,omitempty"`
	ParentID   *uuid.UUID `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`

	Description string `gorm:"column:description;not null" json:"description"`
	IsCompleted bool   `gorm:"column:is_completed;not null" json:"is_completed"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (LearningObjective) TableName() string { return "learning_objective" }

func (o *LearningObjective) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
