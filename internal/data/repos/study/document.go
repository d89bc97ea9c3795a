package study

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Document, error)
	List(dbc dbctx.Context) ([]*types.Document, error)
	ListByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Document, error)
	ListWithSummary(dbc dbctx.Context) ([]*types.Document, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (r *documentRepo) Create(dbc dbctx.Context, doc *types.Document) (*types.Document, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByID returns (nil, nil) when the document does not exist.
func (r *documentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Document, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Document
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// List returns the newest documents first.
func (r *documentRepo) List(dbc dbctx.Context) ([]*types.Document, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Document
	if err := t.WithContext(dbc.Ctx).Order("created_at DESC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepo) ListByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Document, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Document
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Order("created_at DESC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithSummary returns documents whose user summary is not blank.
func (r *documentRepo) ListWithSummary(dbc dbctx.Context) ([]*types.Document, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Document
	if err := t.WithContext(dbc.Ctx).
		Where("user_summary IS NOT NULL AND TRIM(user_summary) <> ''").
		Order("created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *documentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Model(&types.Document{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *documentRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Document{})
	return res.RowsAffected, res.Error
}
