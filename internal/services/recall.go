package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
	"github.com/Roblokonha/StudyVault/internal/observability"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

type RecallService interface {
	// Deck returns up to recall.DeckSize items, or the placeholder item when nothing is available.
	Deck(ctx context.Context) ([]recall.Item, error)
	// Question builds one fill-in-the-blank question from the document text. A nil
	// question with a nil error means no sentence qualified.
	Question(ctx context.Context, docID uuid.UUID, opts recall.Options) (*recall.FillInBlank, error)
}

type recallService struct {
	db   *gorm.DB
	log  *logger.Logger
	gen  *recall.Generator
	docs repos.DocumentRepo
}

func NewRecallService(db *gorm.DB, baseLog *logger.Logger, r repos.Repos, gen *recall.Generator) RecallService {
	if gen == nil {
		gen = recall.NewGenerator(nil)
	}
	return &recallService{
		db:   db,
		log:  baseLog.With("service", "RecallService"),
		gen:  gen,
		docs: r.Documents,
	}
}

func (s *recallService) Deck(ctx context.Context) ([]recall.Item, error) {
	const op = "recall.deck"
	var summarized, all []*types.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.docs.ListWithSummary(dbctx.Context{Ctx: gctx})
		summarized = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.docs.List(dbctx.Context{Ctx: gctx})
		all = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, aggregates.MapError(op, err)
	}

	deck := s.gen.Deck(toSources(summarized), toSources(all))
	s.log.Debug("recall deck built", "items", len(deck), "summarized_documents", len(summarized), "documents", len(all))
	return deck, nil
}

func (s *recallService) Question(ctx context.Context, docID uuid.UUID, opts recall.Options) (*recall.FillInBlank, error) {
	const op = "recall.question"
	doc, err := requireDocument(dbctx.Context{Ctx: ctx}, s.docs, op, docID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	q, ok := s.gen.FillInBlank(doc.ExtractedContent, opts)
	observability.Current().IncRecallQuestion(ok)
	if !ok {
		s.log.Debug("no fill-in-blank question", "document_id", docID)
		return nil, nil
	}
	return q, nil
}

func toSources(docs []*types.Document) []recall.Source {
	out := make([]recall.Source, 0, len(docs))
	for _, d := range docs {
		if d == nil {
			continue
		}
		out = append(out, recall.Source{
			ID:       d.ID,
			Filename: d.Filename,
			Category: d.Category,
			Summary:  strings.TrimSpace(d.UserSummary),
			Content:  d.ExtractedContent,
		})
	}
	return out
}
