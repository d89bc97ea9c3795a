package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	"github.com/Roblokonha/StudyVault/internal/data/repos/testutil"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
	"github.com/Roblokonha/StudyVault/internal/learning/breakdown"
	"github.com/Roblokonha/StudyVault/internal/learning/graph"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

type harness struct {
	ctx   context.Context
	db    *gorm.DB
	repos repos.Repos
	cache *rediscache.Memory

	documents  DocumentService
	workspace  WorkspaceService
	objectives ObjectiveService
	graphs     GraphService
	recall     RecallService
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithRunner(t, nil)
}

// newHarnessWithRunner builds services over a fresh database. A nil runner uses the
// real GORM runner.
func newHarnessWithRunner(t *testing.T, runner aggregates.TxRunner) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	if runner == nil {
		runner = aggregates.NewGormTxRunner(db)
	}
	r := repos.New(db, log)
	cache := rediscache.NewMemory()
	return &harness{
		ctx:        context.Background(),
		db:         db,
		repos:      r,
		cache:      cache,
		documents:  NewDocumentService(db, log, runner, r, extractor.New(log), cache),
		workspace:  NewWorkspaceService(db, log, runner, r, breakdown.Default(log), cache),
		objectives: NewObjectiveService(db, log, runner, r),
		graphs:     NewGraphService(db, log, r, cache, nil, graph.FixedStyler{Connector: "-->", Color: "#87CEEB"}),
		recall:     NewRecallService(db, log, r, recall.NewSeededGenerator(7)),
	}
}

// seedTree creates the fixture used by merge tests:
//
//	A
//	B -> B1, B2
//	C -> C1
//
// with relations X: A->B and Y: B->C. Items are created A, B, B1, B2, C, C1 with
// increasing timestamps, so C1 is newest.
func (h *harness) seedTree(t *testing.T) (*types.Document, map[string]*types.WorkspaceItem) {
	t.Helper()
	doc := testutil.SeedDocument(t, h.ctx, h.db, "biology.txt")
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	items := map[string]*types.WorkspaceItem{}
	step := 0
	add := func(title string, parent string, order int) {
		var pid *uuid.UUID
		if parent != "" {
			pid = testutil.PtrUUID(items[parent].ID)
		}
		items[title] = testutil.SeedItem(t, h.ctx, h.db, doc.ID, pid, title, order, base.Add(time.Duration(step)*time.Minute))
		step++
	}
	add("A", "", 1)
	add("B", "", 2)
	add("B1", "B", 2)
	add("B2", "B", 1)
	add("C", "", 3)
	add("C1", "C", 1)
	testutil.SeedRelation(t, h.ctx, h.db, doc.ID, items["A"].ID, items["B"].ID, "X")
	testutil.SeedRelation(t, h.ctx, h.db, doc.ID, items["B"].ID, items["C"].ID, "Y")
	return doc, items
}
