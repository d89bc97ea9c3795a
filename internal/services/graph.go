package services

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	neo4jgraph "github.com/Roblokonha/StudyVault/internal/data/graph"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/learning/graph"
	"github.com/Roblokonha/StudyVault/internal/observability"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/neo4jdb"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

const (
	formatMermaid = "mermaid"
	formatPNG     = "png"
)

type GraphService interface {
	Graph(ctx context.Context, docID uuid.UUID) (graph.Graph, error)
	Mermaid(ctx context.Context, docID uuid.UUID) (string, error)
	PNG(ctx context.Context, docID uuid.UUID) ([]byte, error)
	// Sync projects the document graph into Neo4j; without a client it does nothing.
	Sync(ctx context.Context, docID uuid.UUID) (neo4jgraph.SyncResult, error)
}

type graphService struct {
	db     *gorm.DB
	log    *logger.Logger
	cache  rediscache.Cache
	neo    *neo4jdb.Client
	styler graph.Styler

	docs      repos.DocumentRepo
	items     repos.WorkspaceItemRepo
	relations repos.RelationRepo
}

// NewGraphService renders Mermaid edges with styler; nil picks a clock seeded one.
func NewGraphService(
	db *gorm.DB,
	baseLog *logger.Logger,
	r repos.Repos,
	cache rediscache.Cache,
	neo *neo4jdb.Client,
	styler graph.Styler,
) GraphService {
	if cache == nil {
		cache = rediscache.Nop()
	}
	if styler == nil {
		styler = graph.NewRandomStyler(nil)
	}
	return &graphService{
		db:        db,
		log:       baseLog.With("service", "GraphService"),
		cache:     cache,
		neo:       neo,
		styler:    styler,
		docs:      r.Documents,
		items:     r.Items,
		relations: r.Relations,
	}
}

func (s *graphService) load(ctx context.Context, op string, docID uuid.UUID) (*types.Document, graph.Graph, []*types.WorkspaceItem, []*types.WorkspaceItemRelation, error) {
	dbc := dbctx.Context{Ctx: ctx}
	doc, err := requireDocument(dbc, s.docs, op, docID)
	if err != nil {
		return nil, graph.Graph{}, nil, nil, aggregates.MapError(op, err)
	}
	items, err := s.items.ListByDocument(dbc, docID)
	if err != nil {
		return nil, graph.Graph{}, nil, nil, aggregates.MapError(op, err)
	}
	rels, err := s.relations.ListByDocument(dbc, docID)
	if err != nil {
		return nil, graph.Graph{}, nil, nil, aggregates.MapError(op, err)
	}
	return doc, graph.Compose(items, rels), items, rels, nil
}

func (s *graphService) Graph(ctx context.Context, docID uuid.UUID) (graph.Graph, error) {
	_, g, _, _, err := s.load(ctx, "graph.compose", docID)
	return g, err
}

func (s *graphService) Mermaid(ctx context.Context, docID uuid.UUID) (string, error) {
	out, err := s.cached(ctx, "graph.mermaid", docID, formatMermaid, func(g graph.Graph) ([]byte, error) {
		return []byte(graph.RenderMermaid(g, s.styler)), nil
	})
	return string(out), err
}

func (s *graphService) PNG(ctx context.Context, docID uuid.UUID) ([]byte, error) {
	return s.cached(ctx, "graph.png", docID, formatPNG, graph.RenderPNG)
}

func (s *graphService) cached(ctx context.Context, op string, docID uuid.UUID, format string, render func(graph.Graph) ([]byte, error)) ([]byte, error) {
	key := docID.String()
	// gen is read before the load so a write committing mid-render retires it.
	gen, genErr := s.cache.Generation(ctx, key)
	if genErr != nil {
		s.log.Warn("graph export cache generation read failed", "document_id", docID, "format", format, "error", genErr)
	} else if b, ok, err := s.cache.Get(ctx, key, format, gen); err != nil {
		s.log.Warn("graph export cache read failed", "document_id", docID, "format", format, "error", err)
	} else if ok {
		observability.Current().IncExport(format, true)
		return b, nil
	}
	observability.Current().IncExport(format, false)
	_, g, _, _, err := s.load(ctx, op, docID)
	if err != nil {
		return nil, err
	}
	out, err := render(g)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if genErr == nil {
		if err := s.cache.Set(ctx, key, format, gen, out); err != nil {
			s.log.Warn("graph export cache write failed", "document_id", docID, "format", format, "error", err)
		}
	}
	return out, nil
}

func (s *graphService) Sync(ctx context.Context, docID uuid.UUID) (neo4jgraph.SyncResult, error) {
	const op = "graph.sync"
	doc, _, items, rels, err := s.load(ctx, op, docID)
	if err != nil {
		return neo4jgraph.SyncResult{}, err
	}
	if !s.neo.Enabled() {
		s.log.Debug("neo4j not configured; graph sync skipped", "document_id", docID)
		return neo4jgraph.SyncResult{}, nil
	}
	res, err := neo4jgraph.SyncWorkspaceGraph(ctx, s.neo, s.log, doc, items, rels)
	if err != nil {
		return neo4jgraph.SyncResult{}, aggregates.MapError(op, err)
	}
	return res, nil
}

// NewSeededStyler returns a Mermaid styler that is deterministic for a non-zero seed.
func NewSeededStyler(seed int64) graph.Styler {
	if seed == 0 {
		return graph.NewRandomStyler(nil)
	}
	return graph.NewRandomStyler(rand.New(rand.NewSource(seed)))
}
