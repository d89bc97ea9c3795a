package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/neo4jdb"
)

// SyncResult reports what a workspace sync wrote.
type SyncResult struct {
	Nodes     int `json:"nodes"`
	PartOf    int `json:"part_of"`
	Relations int `json:"relations"`
}

// SyncRecords turns a document's items and relations into the parameter maps the
// sync statements UNWIND. Relations with an endpoint outside items are skipped.
func SyncRecords(docID uuid.UUID, items []*types.WorkspaceItem, relations []*types.WorkspaceItemRelation, now string) (nodes, partOf, rels []map[string]any) {
	known := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if it == nil || it.ID == uuid.Nil {
			continue
		}
		known[it.ID] = struct{}{}
	}
	for _, it := range items {
		if it == nil || it.ID == uuid.Nil {
			continue
		}
		nodes = append(nodes, map[string]any{
			"id":          it.ID.String(),
			"document_id": docID.String(),
			"title":       it.Title,
			"sort_order":  int64(it.Order),
			"synced_at":   now,
		})
		if it.HasParent() {
			if _, ok := known[*it.ParentID]; ok {
				partOf = append(partOf, map[string]any{
					"child_id":  it.ID.String(),
					"parent_id": it.ParentID.String(),
				})
			}
		}
	}
	for _, r := range relations {
		if r == nil {
			continue
		}
		_, okS := known[r.SourceID]
		_, okT := known[r.TargetID]
		if !okS || !okT {
			continue
		}
		rels = append(rels, map[string]any{
			"id":        r.ID.String(),
			"from_id":   r.SourceID.String(),
			"to_id":     r.TargetID.String(),
			"label":     r.Label,
			"synced_at": now,
		})
	}
	return nodes, partOf, rels
}

// SyncWorkspaceGraph replaces the document's subgraph in Neo4j with the current rows.
// A nil client is a no-op.
func SyncWorkspaceGraph(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, doc *types.Document, items []*types.WorkspaceItem, relations []*types.WorkspaceItemRelation) (SyncResult, error) {
	if client == nil || client.Driver == nil {
		return SyncResult{}, nil
	}
	if doc == nil || doc.ID == uuid.Nil {
		return SyncResult{}, fmt.Errorf("neo4j workspace graph sync: missing document")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	nodes, partOf, rels := SyncRecords(doc.ID, items, relations, now)

	session := client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: client.Database,
	})
	defer session.Close(ctx)

	// Schema helpers may fail for restricted users.
	for _, stmt := range []string{
		`CREATE CONSTRAINT workspace_item_id_unique IF NOT EXISTS FOR (w:WorkspaceItem) REQUIRE w.id IS UNIQUE`,
		`CREATE CONSTRAINT study_document_id_unique IF NOT EXISTS FOR (d:StudyDocument) REQUIRE d.id IS UNIQUE`,
	} {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		run := func(cypher string, params map[string]any) error {
			res, err := tx.Run(ctx, cypher, params)
			if err != nil {
				return err
			}
			_, err = res.Consume(ctx)
			return err
		}

		if err := run(`
MERGE (d:StudyDocument {id: $doc.id})
SET d += $doc
WITH d
OPTIONAL MATCH (w:WorkspaceItem {document_id: d.id})
DETACH DELETE w
`, map[string]any{"doc": map[string]any{
			"id":        doc.ID.String(),
			"filename":  doc.Filename,
			"category":  doc.Category,
			"synced_at": now,
		}}); err != nil {
			return nil, err
		}

		if len(nodes) > 0 {
			if err := run(`
UNWIND $nodes AS n
MATCH (d:StudyDocument {id: n.document_id})
MERGE (w:WorkspaceItem {id: n.id})
SET w += n
MERGE (w)-[:IN_DOCUMENT]->(d)
`, map[string]any{"nodes": nodes}); err != nil {
				return nil, err
			}
		}
		if len(partOf) > 0 {
			if err := run(`
UNWIND $edges AS e
MATCH (c:WorkspaceItem {id: e.child_id})
MATCH (p:WorkspaceItem {id: e.parent_id})
MERGE (c)-[:PART_OF]->(p)
`, map[string]any{"edges": partOf}); err != nil {
				return nil, err
			}
		}
		if len(rels) > 0 {
			if err := run(`
UNWIND $rels AS r
MATCH (a:WorkspaceItem {id: r.from_id})
MATCH (b:WorkspaceItem {id: r.to_id})
MERGE (a)-[e:RELATES_TO {id: r.id}]->(b)
SET e.label = r.label,
    e.synced_at = r.synced_at
`, map[string]any{"rels": rels}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return SyncResult{}, err
	}

	out := SyncResult{Nodes: len(nodes), PartOf: len(partOf), Relations: len(rels)}
	if log != nil {
		log.Debug("neo4j workspace graph synced", "document_id", doc.ID, "nodes", out.Nodes, "part_of", out.PartOf, "relations", out.Relations)
	}
	return out, nil
}
