package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	"github.com/Roblokonha/StudyVault/internal/data/repos"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
	"github.com/Roblokonha/StudyVault/internal/platform/rediscache"
)

// requireDocument loads docID or fails with not_found.
func requireDocument(dbc dbctx.Context, docs repos.DocumentRepo, op string, docID uuid.UUID) (*types.Document, error) {
	doc, err := docs.GetByID(dbc, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domainagg.NotFound(op, "document %s not found", docID)
	}
	return doc, nil
}

// requireItem loads itemID and checks it belongs to docID.
func requireItem(dbc dbctx.Context, items repos.WorkspaceItemRepo, op string, docID, itemID uuid.UUID) (*types.WorkspaceItem, error) {
	it, err := items.GetByID(dbc, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.DocumentID != docID {
		return nil, domainagg.NotFound(op, "item %s not found in document %s", itemID, docID)
	}
	return it, nil
}

// requireItemsInDocument confirms that every id, which must be distinct, names an item of docID.
func requireItemsInDocument(dbc dbctx.Context, guard aggregates.RowGuard, op string, docID uuid.UUID, ids ...uuid.UUID) error {
	n, err := guard.CountInDocument(dbc, types.WorkspaceItem{}.TableName(), docID, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return domainagg.NotFound(op, "%d of %d items not found in document %s", int64(len(ids))-n, len(ids), docID)
	}
	return nil
}

// invalidateExports drops cached graph exports after a committed write. A cache
// failure only costs a stale export, so it is logged and swallowed.
func invalidateExports(ctx context.Context, cache rediscache.Cache, log *logger.Logger, docID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, docID.String()); err != nil {
		log.Warn("graph export cache invalidate failed", "document_id", docID, "error", err)
	}
}
