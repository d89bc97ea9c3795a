package study

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type RelationRepo interface {
	Create(dbc dbctx.Context, rows []*types.WorkspaceItemRelation) ([]*types.WorkspaceItemRelation, error)
	ListByDocument(dbc dbctx.Context, docID uuid.UUID) ([]*types.WorkspaceItemRelation, error)

	// RewriteSource points every relation starting at from to start at to instead.
	RewriteSource(dbc dbctx.Context, docID, from, to uuid.UUID) (int64, error)
	// RewriteTarget points every relation ending at from to end at to instead.
	RewriteTarget(dbc dbctx.Context, docID, from, to uuid.UUID) (int64, error)

	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
	DeleteTouching(dbc dbctx.Context, itemIDs []uuid.UUID) (int64, error)
	DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error)
}

type relationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationRepo(db *gorm.DB, baseLog *logger.Logger) RelationRepo {
	return &relationRepo{db: db, log: baseLog.With("repo", "RelationRepo")}
}

func (r *relationRepo) Create(dbc dbctx.Context, rows []*types.WorkspaceItemRelation) ([]*types.WorkspaceItemRelation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.WorkspaceItemRelation{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *relationRepo) ListByDocument(dbc dbctx.Context, docID uuid.UUID) ([]*types.WorkspaceItemRelation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.WorkspaceItemRelation
	if err := t.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *relationRepo) RewriteSource(dbc dbctx.Context, docID, from, to uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.WorkspaceItemRelation{}).
		Where("document_id = ? AND source_id = ?", docID, from).
		Update("source_id", to)
	return res.RowsAffected, res.Error
}

func (r *relationRepo) RewriteTarget(dbc dbctx.Context, docID, from, to uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.WorkspaceItemRelation{}).
		Where("document_id = ? AND target_id = ?", docID, from).
		Update("target_id", to)
	return res.RowsAffected, res.Error
}

func (r *relationRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.WorkspaceItemRelation{})
	return res.RowsAffected, res.Error
}

func (r *relationRepo) DeleteTouching(dbc dbctx.Context, itemIDs []uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("source_id IN ? OR target_id IN ?", itemIDs, itemIDs).
		Delete(&types.WorkspaceItemRelation{})
	return res.RowsAffected, res.Error
}

func (r *relationRepo) DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("document_id = ?", docID).Delete(&types.WorkspaceItemRelation{})
	return res.RowsAffected, res.Error
}
