package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	aggtestutil "github.com/Roblokonha/StudyVault/internal/data/aggregates/testutil"
	"github.com/Roblokonha/StudyVault/internal/data/repos/testutil"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

func relationsByLabel(t *testing.T, h *harness, docID uuid.UUID) map[string]*types.WorkspaceItemRelation {
	t.Helper()
	rels, err := h.workspace.ListRelations(h.ctx, docID)
	if err != nil {
		t.Fatalf("ListRelations: %v", err)
	}
	out := make(map[string]*types.WorkspaceItemRelation, len(rels))
	for _, r := range rels {
		out[r.Label] = r
	}
	return out
}

func titles(nodes []*forest.ItemNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeExplicitPair(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)
	src, dst := items["B"].ID, items["C"].ID

	out, err := h.workspace.Merge(h.ctx, doc.ID, &src, &dst)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.TargetID != dst || out.AbsorbedChildren != 2 || out.RewrittenRelations != 2 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	tree, err := h.workspace.Tree(h.ctx, doc.ID)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if got := titles(tree); !equalStrings(got, []string{"A", "C"}) {
		t.Fatalf("roots: %v", got)
	}
	// C1 (order 1), B2 (order 1) and B1 (order 2): ties keep creation order.
	if got := titles(tree[1].Children); !equalStrings(got, []string{"B2", "C1", "B1"}) {
		t.Fatalf("children of C: %v", got)
	}

	byLabel := relationsByLabel(t, h, doc.ID)
	for label, r := range byLabel {
		if r.Touches(src) {
			t.Fatalf("relation %q still references the source", label)
		}
	}
	if byLabel["X"].SourceID != items["A"].ID || byLabel["X"].TargetID != dst {
		t.Fatalf("X not rewritten: %+v", byLabel["X"])
	}
	// B->C becomes a self-loop on C and is kept.
	if byLabel["Y"].SourceID != dst || byLabel["Y"].TargetID != dst {
		t.Fatalf("Y not rewritten: %+v", byLabel["Y"])
	}
	if h.cache.Invalidations == 0 {
		t.Fatalf("expected graph export cache invalidation")
	}
}

func TestMergeAutoSelectsNewestPair(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)

	cand, err := h.workspace.MergeCandidates(h.ctx, doc.ID)
	if err != nil {
		t.Fatalf("MergeCandidates: %v", err)
	}
	if cand.SourceID != items["C1"].ID || cand.TargetID != items["C"].ID {
		t.Fatalf("candidates: %+v", cand)
	}

	out, err := h.workspace.Merge(h.ctx, doc.ID, nil, nil)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if out.SourceID != items["C1"].ID || out.TargetID != items["C"].ID || out.AbsorbedChildren != 0 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if _, err := h.workspace.GetItem(h.ctx, doc.ID, items["C1"].ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected source to be gone, got %v", err)
	}
}

func TestMergeErrors(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)
	b, b1 := items["B"].ID, items["B1"].ID
	missing := uuid.New()
	other := testutil.SeedDocument(t, h.ctx, h.db, "chemistry.txt")
	foreign := testutil.SeedItem(t, h.ctx, h.db, other.ID, nil, "F", 1, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)).ID

	cases := []struct {
		name     string
		doc      uuid.UUID
		src, dst *uuid.UUID
		want     domainagg.ErrorCode
	}{
		{"same item", doc.ID, &b, &b, domainagg.CodeInvalidOperation},
		{"missing source", doc.ID, &missing, &b, domainagg.CodeNotFound},
		{"missing target", doc.ID, &b, &missing, domainagg.CodeNotFound},
		{"target inside source", doc.ID, &b, &b1, domainagg.CodeInvalidOperation},
		{"target in another document", doc.ID, &b, &foreign, domainagg.CodeNotFound},
		{"missing document", uuid.New(), &b, &b1, domainagg.CodeNotFound},
		{"half pair", doc.ID, &b, nil, domainagg.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.workspace.Merge(h.ctx, tc.doc, tc.src, tc.dst)
			if !domainagg.IsCode(err, tc.want) {
				t.Fatalf("want %s, got %v", tc.want, err)
			}
		})
	}

	n, err := h.repos.Items.CountByDocument(dbctx.Context{Ctx: h.ctx}, doc.ID)
	if err != nil || n != 6 {
		t.Fatalf("failed merges must not change items: n=%d err=%v", n, err)
	}
}

func TestMergeInsufficientData(t *testing.T) {
	h := newHarness(t)
	doc := testutil.SeedDocument(t, h.ctx, h.db, "one.txt")
	only, err := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: "Only"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	other := uuid.New()

	if _, err := h.workspace.Merge(h.ctx, doc.ID, nil, nil); !domainagg.IsCode(err, domainagg.CodeInsufficientData) {
		t.Fatalf("auto merge: want insufficient_data, got %v", err)
	}
	if _, err := h.workspace.Merge(h.ctx, doc.ID, &only.ID, &other); !domainagg.IsCode(err, domainagg.CodeInsufficientData) {
		t.Fatalf("explicit merge: want insufficient_data, got %v", err)
	}
	if _, err := h.workspace.MergeCandidates(h.ctx, doc.ID); !domainagg.IsCode(err, domainagg.CodeInsufficientData) {
		t.Fatalf("candidates: want insufficient_data, got %v", err)
	}
}

func TestMergeRollsBackOnCommitFailure(t *testing.T) {
	boom := errors.New("commit lost")
	runner := &aggtestutil.InjectedTxRunner{FailCommit: boom}
	h := newHarnessWithRunner(t, runner)
	runner.Inner = aggregates.NewGormTxRunner(h.db)

	doc, items := h.seedTree(t)
	src, dst := items["B"].ID, items["C"].ID
	if _, err := h.workspace.Merge(h.ctx, doc.ID, &src, &dst); err == nil {
		t.Fatalf("expected merge to fail")
	}
	if runner.RollbackCalls != 1 {
		t.Fatalf("rollback calls: want=1 got=%d", runner.RollbackCalls)
	}

	tree, err := h.workspace.Tree(h.ctx, doc.ID)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if got := titles(tree); !equalStrings(got, []string{"A", "B", "C"}) {
		t.Fatalf("roots after rollback: %v", got)
	}
	if got := titles(tree[1].Children); !equalStrings(got, []string{"B2", "B1"}) {
		t.Fatalf("children of B after rollback: %v", got)
	}
	byLabel := relationsByLabel(t, h, doc.ID)
	if byLabel["X"].TargetID != src || byLabel["Y"].SourceID != src {
		t.Fatalf("relations changed despite rollback: %+v", byLabel)
	}
}

func TestCreateItemOrderAndParent(t *testing.T) {
	h := newHarness(t)
	doc := testutil.SeedDocument(t, h.ctx, h.db, "notes.md")

	root, err := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: "  Root  "})
	if err != nil {
		t.Fatalf("CreateItem(root): %v", err)
	}
	if root.Title != "Root" || root.Order != 1 {
		t.Fatalf("root: title=%q order=%d", root.Title, root.Order)
	}
	c1, _ := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: "c1", ParentID: &root.ID})
	c2, _ := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: "c2", ParentID: &root.ID})
	if c1.Order != 1 || c2.Order != 2 {
		t.Fatalf("child orders: %d %d", c1.Order, c2.Order)
	}

	if _, err := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: " "}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("blank title: got %v", err)
	}
	missing := uuid.New()
	if _, err := h.workspace.CreateItem(h.ctx, doc.ID, CreateItemInput{Title: "x", ParentID: &missing}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing parent: got %v", err)
	}
}

func TestMoveItemRejectsCycles(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)
	b, b1, c := items["B"].ID, items["B1"].ID, items["C"].ID

	if _, err := h.workspace.MoveItem(h.ctx, doc.ID, b, &b1); !domainagg.IsCode(err, domainagg.CodeInvalidOperation) {
		t.Fatalf("move under descendant: got %v", err)
	}
	if _, err := h.workspace.MoveItem(h.ctx, doc.ID, b, &b); !domainagg.IsCode(err, domainagg.CodeInvalidOperation) {
		t.Fatalf("move under itself: got %v", err)
	}

	moved, err := h.workspace.MoveItem(h.ctx, doc.ID, b1, &c)
	if err != nil {
		t.Fatalf("MoveItem: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != c || moved.Order != 2 {
		t.Fatalf("moved: parent=%v order=%d", moved.ParentID, moved.Order)
	}
	rooted, err := h.workspace.MoveItem(h.ctx, doc.ID, b1, nil)
	if err != nil {
		t.Fatalf("MoveItem(root): %v", err)
	}
	if rooted.HasParent() || rooted.Order != 4 {
		t.Fatalf("rooted: parent=%v order=%d", rooted.ParentID, rooted.Order)
	}
}

func TestDeleteItemCascades(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)

	n, err := h.workspace.DeleteItem(h.ctx, doc.ID, items["B"].ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if n != 3 {
		t.Fatalf("deleted: want=3 got=%d", n)
	}
	rels, _ := h.workspace.ListRelations(h.ctx, doc.ID)
	if len(rels) != 0 {
		t.Fatalf("relations touching the subtree must go, left %d", len(rels))
	}
	tree, _ := h.workspace.Tree(h.ctx, doc.ID)
	if forest.CountItems(tree) != 3 {
		t.Fatalf("items left: %d", forest.CountItems(tree))
	}
}

func TestLabelsAndUserContent(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)
	a := items["A"].ID

	high, role := "high", "core"
	it, err := h.workspace.UpdateLabels(h.ctx, doc.ID, a, LabelsInput{Importance: &high, LearningRole: &role})
	if err != nil {
		t.Fatalf("UpdateLabels: %v", err)
	}
	if it.Importance == nil || *it.Importance != "high" || it.Difficulty != nil {
		t.Fatalf("labels: %+v", it)
	}
	empty := ""
	it, err = h.workspace.UpdateLabels(h.ctx, doc.ID, a, LabelsInput{Importance: &empty})
	if err != nil {
		t.Fatalf("UpdateLabels(clear): %v", err)
	}
	if it.Importance != nil || it.LearningRole == nil {
		t.Fatalf("clear only importance: %+v", it)
	}

	it, err = h.workspace.UpdateUserContent(h.ctx, doc.ID, a, "my notes")
	if err != nil || it.UserContent != "my notes" {
		t.Fatalf("UpdateUserContent: %v %+v", err, it)
	}
	if _, err := h.workspace.UpdateUserContent(h.ctx, uuid.New(), a, "x"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("wrong document: got %v", err)
	}
}

func TestRelationsValidation(t *testing.T) {
	h := newHarness(t)
	doc, items := h.seedTree(t)
	a, c := items["A"].ID, items["C"].ID

	rel, err := h.workspace.CreateRelation(h.ctx, doc.ID, CreateRelationInput{SourceID: a, TargetID: c, Label: " explains "})
	if err != nil {
		t.Fatalf("CreateRelation: %v", err)
	}
	if rel.Label != "explains" {
		t.Fatalf("label: %q", rel.Label)
	}
	if _, err := h.workspace.CreateRelation(h.ctx, doc.ID, CreateRelationInput{SourceID: a, TargetID: a}); !domainagg.IsCode(err, domainagg.CodeInvalidOperation) {
		t.Fatalf("self relation: got %v", err)
	}
	if _, err := h.workspace.CreateRelation(h.ctx, doc.ID, CreateRelationInput{SourceID: a, TargetID: uuid.New()}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing endpoint: got %v", err)
	}
	other := testutil.SeedDocument(t, h.ctx, h.db, "chemistry.txt")
	foreign := testutil.SeedItem(t, h.ctx, h.db, other.ID, nil, "F", 1, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC))
	if _, err := h.workspace.CreateRelation(h.ctx, doc.ID, CreateRelationInput{SourceID: a, TargetID: foreign.ID}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("endpoint in another document: got %v", err)
	}
	if err := h.workspace.DeleteRelation(h.ctx, doc.ID, rel.ID); err != nil {
		t.Fatalf("DeleteRelation: %v", err)
	}
	if err := h.workspace.DeleteRelation(h.ctx, doc.ID, rel.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestAutoBreakdown(t *testing.T) {
	h := newHarness(t)
	doc := testutil.SeedDocument(t, h.ctx, h.db, "lecture-ai-voice.pdf")
	plain := testutil.SeedDocument(t, h.ctx, h.db, "random.txt")

	tree, err := h.workspace.AutoBreakdown(h.ctx, doc.ID)
	if err != nil {
		t.Fatalf("AutoBreakdown: %v", err)
	}
	if len(tree) != 1 || tree[0].Title != "AI Voice Technology" || len(tree[0].Children) != 3 {
		t.Fatalf("template tree: %+v", titles(tree))
	}

	tree, err = h.workspace.AutoBreakdown(h.ctx, plain.ID)
	if err != nil {
		t.Fatalf("AutoBreakdown(fallback): %v", err)
	}
	if len(tree) != 1 || tree[0].Title != "Map for 'random.txt'" {
		t.Fatalf("fallback tree: %v", titles(tree))
	}

	// running again replaces rather than appends
	if _, err := h.workspace.AutoBreakdown(h.ctx, plain.ID); err != nil {
		t.Fatalf("AutoBreakdown(again): %v", err)
	}
	again, _ := h.workspace.Tree(h.ctx, plain.ID)
	if forest.CountItems(again) != 1 {
		t.Fatalf("expected replacement, got %d items", forest.CountItems(again))
	}
}
