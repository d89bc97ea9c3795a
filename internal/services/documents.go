package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

type CreateDocumentInput struct {
	Filename         string   `json:"filename"`
	ExtractedContent string   `json:"extracted_content"`
	UserSummary      string   `json:"user_summary"`
	Category         string   `json:"category"`
	Keywords         []string `json:"keywords"`
}

type DocumentService interface {
	domainagg.Aggregate
	Create(ctx context.Context, in CreateDocumentInput) (*types.Document, error)
	// Upload extracts text from data. Extraction failures are stored as the failure
	// marker text rather than returned.
	Upload(ctx context.Context, filename, mimeType, category string, data []byte) (*types.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Document, error)
	List(ctx context.Context) ([]*types.Document, error)
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) (*types.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	db        *gorm.DB
	log       *logger.Logger
	runner    aggregates.TxRunner
	extractor *extractor.Extractor
	cache     rediscache.Cache

	docs       repos.DocumentRepo
	items      repos.WorkspaceItemRepo
	relations  repos.RelationRepo
	objectives repos.ObjectiveRepo
}

func NewDocumentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	runner aggregates.TxRunner,
	r repos.Repos,
	ex *extractor.Extractor,
	cache rediscache.Cache,
) DocumentService {
	if cache == nil {
		cache = rediscache.Nop()
	}
	return &documentService{
		db:         db,
		log:        baseLog.With("service", "DocumentService", "aggregate", domainagg.DocumentAggregateContract.Name),
		runner:     runner,
		extractor:  ex,
		cache:      cache,
		docs:       r.Documents,
		items:      r.Items,
		relations:  r.Relations,
		objectives: r.Objectives,
	}
}

func (s *documentService) Create(ctx context.Context, in CreateDocumentInput) (*types.Document, error) {
	const op = "document.create"
	filename := strings.TrimSpace(in.Filename)
	if filename == "" {
		return nil, domainagg.Validation(op, "filename is required")
	}
	doc := &types.Document{
		Filename:         filename,
		Category:         strings.TrimSpace(in.Category),
		ExtractedContent: in.ExtractedContent,
		UserSummary:      strings.TrimSpace(in.UserSummary),
	}
	if len(in.Keywords) > 0 {
		raw, err := json.Marshal(in.Keywords)
		if err != nil {
			return nil, domainagg.Wrap(domainagg.CodeValidation, op, err)
		}
		doc.Keywords = datatypes.JSON(raw)
	}
	if _, err := s.docs.Create(dbctx.Context{Ctx: ctx}, doc); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	s.log.Info("document created", "document_id", doc.ID, "filename", doc.Filename)
	return doc, nil
}

func (s *documentService) Upload(ctx context.Context, filename, mimeType, category string, data []byte) (*types.Document, error) {
	text := s.extractor.Text(filename, mimeType, data)
	if extractor.IsFailure(text) {
		s.log.Warn("document stored with failed extraction", "filename", filename)
	}
	return s.Create(ctx, CreateDocumentInput{
		Filename:         filename,
		ExtractedContent: text,
		Category:         category,
	})
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*types.Document, error) {
	doc, err := requireDocument(dbctx.Context{Ctx: ctx}, s.docs, "document.get", id)
	if err != nil {
		return nil, aggregates.MapError("document.get", err)
	}
	return doc, nil
}

func (s *documentService) List(ctx context.Context) ([]*types.Document, error) {
	out, err := s.docs.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, aggregates.MapError("document.list", err)
	}
	return out, nil
}

func (s *documentService) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) (*types.Document, error) {
	const op = "document.update_summary"
	var out *types.Document
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if _, err := requireDocument(dbc, s.docs, op, id); err != nil {
			return err
		}
		if _, err := s.docs.UpdateFields(dbc, id, map[string]interface{}{"user_summary": strings.TrimSpace(summary)}); err != nil {
			return err
		}
		doc, err := s.docs.GetByID(dbc, id)
		out = doc
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the document with its relations, items and objectives. Trees are
// removed leaf first.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "document.delete"
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if _, err := requireDocument(dbc, s.docs, op, id); err != nil {
			return err
		}
		if _, err := s.relations.DeleteByDocument(dbc, id); err != nil {
			return err
		}

		items, err := s.items.ListByDocument(dbc, id)
		if err != nil {
			return err
		}
		for _, itemID := range forest.ItemIndex(items).AllLeafToRoot() {
			if _, err := s.items.DeleteByIDs(dbc, []uuid.UUID{itemID}); err != nil {
				return err
			}
		}

		objs, err := s.objectives.List(dbc, &id)
		if err != nil {
			return err
		}
		for _, objID := range forest.ObjectiveIndex(objs).AllLeafToRoot() {
			if _, err := s.objectives.DeleteByIDs(dbc, []uuid.UUID{objID}); err != nil {
				return err
			}
		}

		n, err := s.docs.DeleteByID(dbc, id)
		if err != nil {
			return err
		}
		return aggregates.RequireAffected("delete document", n, 1)
	})
	if err != nil {
		return err
	}
	invalidateExports(ctx, s.cache, s.log, id)
	s.log.Info("document deleted", "document_id", id)
	return nil
}

func (s *documentService) Contract() domainagg.Contract { return domainagg.DocumentAggregateContract }
