package graph

import (
	"context"
	"testing"

	"github.com/google/uuid"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

func TestSyncRecordsSkipsDanglingEdges(t *testing.T) {
	docID := uuid.New()
	root := &types.WorkspaceItem{ID: uuid.New(), DocumentID: docID, Title: "Root"}
	missing := uuid.New()
	child := &types.WorkspaceItem{ID: uuid.New(), DocumentID: docID, ParentID: &root.ID, Title: "Child", Order: 1}
	orphan := &types.WorkspaceItem{ID: uuid.New(), DocumentID: docID, ParentID: &missing, Title: "Orphan"}

	rels := []*types.WorkspaceItemRelation{
		{ID: uuid.New(), DocumentID: docID, SourceID: child.ID, TargetID: orphan.ID, Label: "supports"},
		{ID: uuid.New(), DocumentID: docID, SourceID: child.ID, TargetID: missing, Label: "dangling"},
	}

	nodes, partOf, edges := SyncRecords(docID, []*types.WorkspaceItem{root, child, orphan}, rels, "now")
	if len(nodes) != 3 {
		t.Fatalf("nodes: want=3 got=%d", len(nodes))
	}
	if len(partOf) != 1 || partOf[0]["child_id"] != child.ID.String() {
		t.Fatalf("part_of: %+v", partOf)
	}
	if len(edges) != 1 || edges[0]["label"] != "supports" {
		t.Fatalf("relations: %+v", edges)
	}
}

func TestSyncWorkspaceGraphNilClient(t *testing.T) {
	res, err := SyncWorkspaceGraph(context.Background(), nil, logger.Nop(), &types.Document{ID: uuid.New()}, nil, nil)
	if err != nil || res != (SyncResult{}) {
		t.Fatalf("expected no-op, got res=%+v err=%v", res, err)
	}
}
