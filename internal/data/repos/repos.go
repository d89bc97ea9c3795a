package repos

import (
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/repos/study"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type DocumentRepo = study.DocumentRepo
type WorkspaceItemRepo = study.WorkspaceItemRepo
type RelationRepo = study.RelationRepo
type ObjectiveRepo = study.ObjectiveRepo

type Repos struct {
	Documents  DocumentRepo
	Items      WorkspaceItemRepo
	Relations  RelationRepo
	Objectives ObjectiveRepo
}

func New(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Documents:  study.NewDocumentRepo(db, log),
		Items:      study.NewWorkspaceItemRepo(db, log),
		Relations:  study.NewRelationRepo(db, log),
		Objectives: study.NewObjectiveRepo(db, log),
	}
}
