package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/learning/breakdown"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/learning/merge"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

type CreateItemInput struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type UpdateItemInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// LabelsInput changes only the keys that are present; an empty string clears a label.
type LabelsInput struct {
	Importance   *string `json:"importance"`
	LearningRole *string `json:"learning_role"`
	Difficulty   *string `json:"difficulty"`
}

type CreateRelationInput struct {
	SourceID uuid.UUID `json:"source_id"`
	TargetID uuid.UUID `json:"target_id"`
	Label    string    `json:"label"`
}

type MergeCandidates struct {
	SourceID    uuid.UUID `json:"source_id"`
	SourceTitle string    `json:"source_title"`
	TargetID    uuid.UUID `json:"target_id"`
	TargetTitle string    `json:"target_title"`
}

type WorkspaceService interface {
	domainagg.Aggregate
	Tree(ctx context.Context, docID uuid.UUID) ([]*forest.ItemNode, error)
	CreateItem(ctx context.Context, docID uuid.UUID, in CreateItemInput) (*types.WorkspaceItem, error)
	GetItem(ctx context.Context, docID, itemID uuid.UUID) (*types.WorkspaceItem, error)
	UpdateItem(ctx context.Context, docID, itemID uuid.UUID, in UpdateItemInput) (*types.WorkspaceItem, error)
	UpdateUserContent(ctx context.Context, docID, itemID uuid.UUID, content string) (*types.WorkspaceItem, error)
	UpdateLabels(ctx context.Context, docID, itemID uuid.UUID, in LabelsInput) (*types.WorkspaceItem, error)
	MoveItem(ctx context.Context, docID, itemID uuid.UUID, newParent *uuid.UUID) (*types.WorkspaceItem, error)
	// DeleteItem removes the item, its descendants and every relation touching them.
	DeleteItem(ctx context.Context, docID, itemID uuid.UUID) (int, error)
	AutoBreakdown(ctx context.Context, docID uuid.UUID) ([]*forest.ItemNode, error)

	CreateRelation(ctx context.Context, docID uuid.UUID, in CreateRelationInput) (*types.WorkspaceItemRelation, error)
	ListRelations(ctx context.Context, docID uuid.UUID) ([]*types.WorkspaceItemRelation, error)
	DeleteRelation(ctx context.Context, docID, relationID uuid.UUID) error

	MergeCandidates(ctx context.Context, docID uuid.UUID) (*MergeCandidates, error)
	// Merge folds source into target. Both nil selects the two newest items.
	Merge(ctx context.Context, docID uuid.UUID, sourceID, targetID *uuid.UUID) (*merge.Outcome, error)
}

type workspaceService struct {
	db      *gorm.DB
	log     *logger.Logger
	runner  aggregates.TxRunner
	guard   aggregates.RowGuard
	catalog *breakdown.Catalog
	cache   rediscache.Cache

	docs      repos.DocumentRepo
	items     repos.WorkspaceItemRepo
	relations repos.RelationRepo
}

func NewWorkspaceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	runner aggregates.TxRunner,
	r repos.Repos,
	catalog *breakdown.Catalog,
	cache rediscache.Cache,
) WorkspaceService {
	if cache == nil {
		cache = rediscache.Nop()
	}
	return &workspaceService{
		db:        db,
		log:       baseLog.With("service", "WorkspaceService", "aggregate", domainagg.WorkspaceAggregateContract.Name),
		runner:    runner,
		guard:     aggregates.NewRowGuard(db),
		catalog:   catalog,
		cache:     cache,
		docs:      r.Documents,
		items:     r.Items,
		relations: r.Relations,
	}
}

func (s *workspaceService) Tree(ctx context.Context, docID uuid.UUID) ([]*forest.ItemNode, error) {
	const op = "workspace.tree"
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := requireDocument(dbc, s.docs, op, docID); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	items, err := s.items.ListByDocument(dbc, docID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return forest.BuildItemTree(items), nil
}

func (s *workspaceService) CreateItem(ctx context.Context, docID uuid.UUID, in CreateItemInput) (*types.WorkspaceItem, error) {
	const op = "workspace.create_item"
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainagg.Validation(op, "title is required")
	}
	var created *types.WorkspaceItem
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if _, err := requireDocument(dbc, s.docs, op, docID); err != nil {
			return err
		}
		items, err := s.items.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}
		parent := normalizeParent(in.ParentID)
		if parent != nil {
			if _, ok := forest.ItemIndex(items).Lookup(*parent); !ok {
				return domainagg.NotFound(op, "parent %s not found in document %s", *parent, docID)
			}
		}
		rows, err := s.items.Create(dbc, []*types.WorkspaceItem{{
			DocumentID: docID,
			ParentID:   parent,
			Title:      title,
			Content:    strings.TrimSpace(in.Content),
			Order:      forest.NextOrder(items, parent),
		}})
		if err != nil {
			return err
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	return created, nil
}

func (s *workspaceService) GetItem(ctx context.Context, docID, itemID uuid.UUID) (*types.WorkspaceItem, error) {
	it, err := requireItem(dbctx.Context{Ctx: ctx}, s.items, "workspace.get_item", docID, itemID)
	if err != nil {
		return nil, aggregates.MapError("workspace.get_item", err)
	}
	return it, nil
}

func (s *workspaceService) UpdateItem(ctx context.Context, docID, itemID uuid.UUID, in UpdateItemInput) (*types.WorkspaceItem, error) {
	const op = "workspace.update_item"
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domainagg.Validation(op, "title must not be empty")
		}
		updates["title"] = title
	}
	if in.Content != nil {
		updates["content"] = strings.TrimSpace(*in.Content)
	}
	return s.updateFields(ctx, op, docID, itemID, updates)
}

func (s *workspaceService) UpdateUserContent(ctx context.Context, docID, itemID uuid.UUID, content string) (*types.WorkspaceItem, error) {
	return s.updateFields(ctx, "workspace.update_user_content", docID, itemID, map[string]interface{}{"user_content": content})
}

func (s *workspaceService) UpdateLabels(ctx context.Context, docID, itemID uuid.UUID, in LabelsInput) (*types.WorkspaceItem, error) {
	updates := map[string]interface{}{}
	put := func(col string, v *string) {
		if v == nil {
			return
		}
		if trimmed := strings.TrimSpace(*v); trimmed != "" {
			updates[col] = trimmed
		} else {
			updates[col] = nil
		}
	}
	put("importance", in.Importance)
	put("learning_role", in.LearningRole)
	put("difficulty", in.Difficulty)
	return s.updateFields(ctx, "workspace.update_labels", docID, itemID, updates)
}

func (s *workspaceService) updateFields(ctx context.Context, op string, docID, itemID uuid.UUID, updates map[string]interface{}) (*types.WorkspaceItem, error) {
	var out *types.WorkspaceItem
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if _, err := requireItem(dbc, s.items, op, docID, itemID); err != nil {
			return err
		}
		if len(updates) > 0 {
			n, err := s.items.UpdateFields(dbc, itemID, updates)
			if err != nil {
				return err
			}
			if err := aggregates.RequireAffected(op, n, 1); err != nil {
				return err
			}
		}
		it, err := s.items.GetByID(dbc, itemID)
		out = it
		return err
	})
	if err != nil {
		return nil, err
	}
	if _, ok := updates["title"]; ok {
		invalidateExports(ctx, s.cache, s.log, docID)
	}
	return out, nil
}

func (s *workspaceService) MoveItem(ctx context.Context, docID, itemID uuid.UUID, newParent *uuid.UUID) (*types.WorkspaceItem, error) {
	const op = "workspace.move_item"
	newParent = normalizeParent(newParent)
	var out *types.WorkspaceItem
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		items, err := s.items.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}
		idx := forest.ItemIndex(items)
		if _, ok := idx.Lookup(itemID); !ok {
			return domainagg.NotFound(op, "item %s not found in document %s", itemID, docID)
		}
		if newParent != nil {
			if _, ok := idx.Lookup(*newParent); !ok {
				return domainagg.NotFound(op, "parent %s not found in document %s", *newParent, docID)
			}
		}
		if idx.WouldCycle(itemID, newParent) {
			return domainagg.InvalidOperation(op, "cannot move an item under itself or one of its descendants")
		}
		var parentValue interface{}
		if newParent != nil {
			parentValue = *newParent
		}
		n, err := s.items.UpdateFields(dbc, itemID, map[string]interface{}{
			"parent_id":  parentValue,
			"sort_order": forest.NextOrder(items, newParent),
		})
		if err != nil {
			return err
		}
		if err := aggregates.RequireAffected(op, n, 1); err != nil {
			return err
		}
		it, err := s.items.GetByID(dbc, itemID)
		out = it
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	return out, nil
}

func (s *workspaceService) DeleteItem(ctx context.Context, docID, itemID uuid.UUID) (int, error) {
	const op = "workspace.delete_item"
	deleted := 0
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		items, err := s.items.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}
		idx := forest.ItemIndex(items)
		if _, ok := idx.Lookup(itemID); !ok {
			return domainagg.NotFound(op, "item %s not found in document %s", itemID, docID)
		}
		ids := idx.LeafToRoot(itemID)
		if _, err := s.relations.DeleteTouching(dbc, ids); err != nil {
			return err
		}
		n, err := s.items.DeleteByIDs(dbc, ids)
		if err != nil {
			return err
		}
		if err := aggregates.RequireAffected(op, n, int64(len(ids))); err != nil {
			return err
		}
		deleted = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	s.log.Info("workspace item deleted", "document_id", docID, "item_id", itemID, "deleted", deleted)
	return deleted, nil
}

// AutoBreakdown replaces the document's items and relations with the catalog
// template matched by filename.
func (s *workspaceService) AutoBreakdown(ctx context.Context, docID uuid.UUID) ([]*forest.ItemNode, error) {
	const op = "workspace.auto_breakdown"
	var rows []*types.WorkspaceItem
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		doc, err := requireDocument(dbc, s.docs, op, docID)
		if err != nil {
			return err
		}
		if _, err := s.relations.DeleteByDocument(dbc, docID); err != nil {
			return err
		}
		if _, err := s.items.DeleteByDocument(dbc, docID); err != nil {
			return err
		}
		rows = s.catalog.Expand(doc)
		// Distinct timestamps keep creation order stable for recency picks.
		base := time.Now().UTC()
		for i, it := range rows {
			it.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			it.UpdatedAt = it.CreatedAt
		}
		_, err = s.items.Create(dbc, rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	s.log.Info("workspace auto breakdown", "document_id", docID, "items", len(rows))
	return forest.BuildItemTree(rows), nil
}

func (s *workspaceService) CreateRelation(ctx context.Context, docID uuid.UUID, in CreateRelationInput) (*types.WorkspaceItemRelation, error) {
	const op = "workspace.create_relation"
	if in.SourceID == in.TargetID {
		return nil, domainagg.InvalidOperation(op, "an item cannot relate to itself")
	}
	var out *types.WorkspaceItemRelation
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if err := requireItemsInDocument(dbc, s.guard, op, docID, in.SourceID, in.TargetID); err != nil {
			return err
		}
		rows, err := s.relations.Create(dbc, []*types.WorkspaceItemRelation{{
			DocumentID: docID,
			SourceID:   in.SourceID,
			TargetID:   in.TargetID,
			Label:      strings.TrimSpace(in.Label),
		}})
		if err != nil {
			return err
		}
		out = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	return out, nil
}

func (s *workspaceService) ListRelations(ctx context.Context, docID uuid.UUID) ([]*types.WorkspaceItemRelation, error) {
	const op = "workspace.list_relations"
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := requireDocument(dbc, s.docs, op, docID); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	out, err := s.relations.ListByDocument(dbc, docID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return out, nil
}

func (s *workspaceService) DeleteRelation(ctx context.Context, docID, relationID uuid.UUID) error {
	const op = "workspace.delete_relation"
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		rels, err := s.relations.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}
		for _, r := range rels {
			if r.ID == relationID {
				_, err := s.relations.DeleteByID(dbc, relationID)
				return err
			}
		}
		return domainagg.NotFound(op, "relation %s not found in document %s", relationID, docID)
	})
	if err != nil {
		return err
	}
	invalidateExports(ctx, s.cache, s.log, docID)
	return nil
}

func normalizeParent(p *uuid.UUID) *uuid.UUID {
	if p == nil || *p == uuid.Nil {
		return nil
	}
	id := *p
	return &id
}

func (s *workspaceService) Contract() domainagg.Contract { return domainagg.WorkspaceAggregateContract }
