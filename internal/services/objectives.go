package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type AddObjectiveInput struct {
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type ObjectiveService interface {
	domainagg.Aggregate
	Tree(ctx context.Context, docID uuid.UUID) ([]*forest.ObjectiveNode, error)
	Add(ctx context.Context, docID uuid.UUID, in AddObjectiveInput) (*types.LearningObjective, error)
	Toggle(ctx context.Context, docID, objectiveID uuid.UUID) (*types.LearningObjective, error)
	// Delete removes the objective and its sub-objectives, deepest first.
	Delete(ctx context.Context, docID, objectiveID uuid.UUID) (int, error)

	// Standalone variants act on objectives attached to no document.
	StandaloneTree(ctx context.Context) ([]*forest.ObjectiveNode, error)
	AddStandalone(ctx context.Context, in AddObjectiveInput) (*types.LearningObjective, error)
	ToggleStandalone(ctx context.Context, objectiveID uuid.UUID) (*types.LearningObjective, error)
	DeleteStandalone(ctx context.Context, objectiveID uuid.UUID) (int, error)
}

type objectiveService struct {
	db     *gorm.DB
	log    *logger.Logger
	runner aggregates.TxRunner

	docs       repos.DocumentRepo
	objectives repos.ObjectiveRepo
}

func NewObjectiveService(db *gorm.DB, baseLog *logger.Logger, runner aggregates.TxRunner, r repos.Repos) ObjectiveService {
	return &objectiveService{
		db:         db,
		log:        baseLog.With("service", "ObjectiveService", "aggregate", domainagg.ObjectiveAggregateContract.Name),
		runner:     runner,
		docs:       r.Documents,
		objectives: r.Objectives,
	}
}

func (s *objectiveService) Tree(ctx context.Context, docID uuid.UUID) ([]*forest.ObjectiveNode, error) {
	return s.tree(ctx, &docID)
}

func (s *objectiveService) StandaloneTree(ctx context.Context) ([]*forest.ObjectiveNode, error) {
	return s.tree(ctx, nil)
}

func (s *objectiveService) Add(ctx context.Context, docID uuid.UUID, in AddObjectiveInput) (*types.LearningObjective, error) {
	return s.add(ctx, &docID, in)
}

func (s *objectiveService) AddStandalone(ctx context.Context, in AddObjectiveInput) (*types.LearningObjective, error) {
	return s.add(ctx, nil, in)
}

func (s *objectiveService) Toggle(ctx context.Context, docID, objectiveID uuid.UUID) (*types.LearningObjective, error) {
	return s.toggle(ctx, &docID, objectiveID)
}

func (s *objectiveService) ToggleStandalone(ctx context.Context, objectiveID uuid.UUID) (*types.LearningObjective, error) {
	return s.toggle(ctx, nil, objectiveID)
}

func (s *objectiveService) Delete(ctx context.Context, docID, objectiveID uuid.UUID) (int, error) {
	return s.delete(ctx, &docID, objectiveID)
}

func (s *objectiveService) DeleteStandalone(ctx context.Context, objectiveID uuid.UUID) (int, error) {
	return s.delete(ctx, nil, objectiveID)
}

// scope is a document id, or nil for standalone objectives.
func scopeName(scope *uuid.UUID) string {
	if scope == nil {
		return "standalone objectives"
	}
	return "document " + scope.String()
}

func (s *objectiveService) list(dbc dbctx.Context, scope *uuid.UUID) ([]*types.LearningObjective, error) {
	if scope == nil {
		return s.objectives.ListStandalone(dbc)
	}
	return s.objectives.List(dbc, scope)
}

func (s *objectiveService) requireScope(dbc dbctx.Context, op string, scope *uuid.UUID) error {
	if scope == nil {
		return nil
	}
	_, err := requireDocument(dbc, s.docs, op, *scope)
	return err
}

func (s *objectiveService) tree(ctx context.Context, scope *uuid.UUID) ([]*forest.ObjectiveNode, error) {
	const op = "objective.tree"
	dbc := dbctx.Context{Ctx: ctx}
	if err := s.requireScope(dbc, op, scope); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	objs, err := s.list(dbc, scope)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return forest.BuildObjectiveTree(objs), nil
}

func (s *objectiveService) add(ctx context.Context, scope *uuid.UUID, in AddObjectiveInput) (*types.LearningObjective, error) {
	const op = "objective.add"
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, domainagg.Validation(op, "description is required")
	}
	parent := normalizeParent(in.ParentID)
	var out *types.LearningObjective
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if err := s.requireScope(dbc, op, scope); err != nil {
			return err
		}
		if parent != nil {
			if _, err := s.requireObjective(dbc, op, scope, *parent); err != nil {
				return err
			}
		}
		row := &types.LearningObjective{ParentID: parent, Description: desc}
		if scope != nil {
			id := *scope
			row.DocumentID = &id
		}
		created, err := s.objectives.Create(dbc, row)
		out = created
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *objectiveService) toggle(ctx context.Context, scope *uuid.UUID, objectiveID uuid.UUID) (*types.LearningObjective, error) {
	const op = "objective.toggle"
	var out *types.LearningObjective
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		obj, err := s.requireObjective(dbc, op, scope, objectiveID)
		if err != nil {
			return err
		}
		if _, err := s.objectives.UpdateFields(dbc, objectiveID, map[string]interface{}{"is_completed": !obj.IsCompleted}); err != nil {
			return err
		}
		out, err = s.objectives.GetByID(dbc, objectiveID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *objectiveService) delete(ctx context.Context, scope *uuid.UUID, objectiveID uuid.UUID) (int, error) {
	const op = "objective.delete"
	deleted := 0
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		objs, err := s.list(dbc, scope)
		if err != nil {
			return err
		}
		idx := forest.ObjectiveIndex(objs)
		if _, ok := idx.Lookup(objectiveID); !ok {
			return domainagg.NotFound(op, "objective %s not found in %s", objectiveID, scopeName(scope))
		}
		for _, id := range idx.LeafToRoot(objectiveID) {
			n, err := s.objectives.DeleteByIDs(dbc, []uuid.UUID{id})
			if err != nil {
				return err
			}
			deleted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *objectiveService) requireObjective(dbc dbctx.Context, op string, scope *uuid.UUID, id uuid.UUID) (*types.LearningObjective, error) {
	obj, err := s.objectives.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	inScope := obj != nil && ((scope == nil && obj.DocumentID == nil) ||
		(scope != nil && obj.DocumentID != nil && *obj.DocumentID == *scope))
	if !inScope {
		return nil, domainagg.NotFound(op, "objective %s not found in %s", id, scopeName(scope))
	}
	return obj, nil
}

func (s *objectiveService) Contract() domainagg.Contract { return domainagg.ObjectiveAggregateContract }
