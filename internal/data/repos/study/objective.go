package study

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type ObjectiveRepo interface {
	Create(dbc dbctx.Context, row *types.LearningObjective) (*types.LearningObjective, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningObjective, error)
	// List returns objectives of docID, or every objective when docID is nil, in insertion order.
	List(dbc dbctx.Context, docID *uuid.UUID) ([]*types.LearningObjective, error)
	// ListStandalone returns objectives attached to no document, in insertion order.
	ListStandalone(dbc dbctx.Context) ([]*types.LearningObjective, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error)
	DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error)
}

type objectiveRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewObjectiveRepo(db *gorm.DB, baseLog *logger.Logger) ObjectiveRepo {
	return &objectiveRepo{db: db, log: baseLog.With("repo", "ObjectiveRepo")}
}

func (r *objectiveRepo) Create(dbc dbctx.Context, row *types.LearningObjective) (*types.LearningObjective, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *objectiveRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.LearningObjective, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningObjective
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *objectiveRepo) List(dbc dbctx.Context, docID *uuid.UUID) ([]*types.LearningObjective, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx)
	if docID != nil {
		q = q.Where("document_id = ?", *docID)
	}
	var out []*types.LearningObjective
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *objectiveRepo) ListStandalone(dbc dbctx.Context) ([]*types.LearningObjective, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.LearningObjective
	err := t.WithContext(dbc.Ctx).
		Where("document_id IS NULL").
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *objectiveRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Model(&types.LearningObjective{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *objectiveRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Delete(&types.LearningObjective{})
	return res.RowsAffected, res.Error
}

func (r *objectiveRepo) DeleteByDocument(dbc dbctx.Context, docID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("document_id = ?", docID).Delete(&types.LearningObjective{})
	return res.RowsAffected, res.Error
}
