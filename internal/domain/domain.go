package domain

import "github.com/Roblokonha/StudyVault/internal/domain/study"

type (
	Document              = study.Document
	WorkspaceItem         = study.WorkspaceItem
	WorkspaceItemRelation = study.WorkspaceItemRelation
	LearningObjective     = study.LearningObjective
)

const DefaultCategory = study.DefaultCategory

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&Document{},
		&WorkspaceItem{},
		&WorkspaceItemRelation{},
		&LearningObjective{},
	}
}
