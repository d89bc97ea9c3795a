package study

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type WorkspaceItemRepo interface {
	Create(dbc dbctx.Context, rows []*types.WorkspaceItem) ([]*types.WorkspaceItem, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WorkspaceItem, error)
	ListByDocument(dbc dbctx.Context, docID uuid.UUID) ([]*types.WorkspaceItem, error)
	CountByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	ReparentChildren(dbc dbctx.Context, docID, fromParent, toParent uuid.UUID) (int64, error)

	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
	DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error)
}

type workspaceItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkspaceItemRepo(db *gorm.DB, baseLog *logger.Logger) WorkspaceItemRepo {
	return &workspaceItemRepo{db: db, log: baseLog.With("repo", "WorkspaceItemRepo")}
}

func (r *workspaceItemRepo) Create(dbc dbctx.Context, rows []*types.WorkspaceItem) ([]*types.WorkspaceItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.WorkspaceItem{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns (nil, nil) when the item does not exist.
func (r *workspaceItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.WorkspaceItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.WorkspaceItem
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// ListByDocument returns the items in creation order, which is the input order the
// tree builder and merge candidate pick rely on.
func (r *workspaceItemRepo) ListByDocument(dbc dbctx.Context, docID uuid.UUID) ([]*types.WorkspaceItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.WorkspaceItem
	if err := t.WithContext(dbc.Ctx).
		Where("document_id = ?", docID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *workspaceItemRepo) CountByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := t.WithContext(dbc.Ctx).Model(&types.WorkspaceItem{}).Where("document_id = ?", docID).Count(&n).Error
	return n, err
}

func (r *workspaceItemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Model(&types.WorkspaceItem{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// ReparentChildren moves every direct child of fromParent under toParent.
func (r *workspaceItemRepo) ReparentChildren(dbc dbctx.Context, docID, fromParent, toParent uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.WorkspaceItem{}).
		Where("document_id = ? AND parent_id = ?", docID, fromParent).
		Update("parent_id", toParent)
	return res.RowsAffected, res.Error
}

func (r *workspaceItemRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.WorkspaceItem{})
	return res.RowsAffected, res.Error
}

func (r *workspaceItemRepo) DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("document_id = ?", docID).Delete(&types.WorkspaceItem{})
	return res.RowsAffected, res.Error
}
