package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func SeedDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, filename string) *types.Document {
	tb.Helper()
	d := &types.Document{
		ID:               uuid.New(),
		Filename:         filename,
		Category:         "General",
		ExtractedContent: "content",
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return d
}

// SeedItem creates an item with an explicit creation time so recency ordering is deterministic.
func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, docID uuid.UUID, parentID *uuid.UUID, title string, order int, createdAt time.Time) *types.WorkspaceItem {
	tb.Helper()
	it := &types.WorkspaceItem{
		ID:         uuid.New(),
		DocumentID: docID,
		ParentID:   parentID,
		Title:      title,
		Content:    title + " content",
		Order:      order,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed workspace item: %v", err)
	}
	return it
}

func SeedRelation(tb testing.TB, ctx context.Context, tx *gorm.DB, docID, sourceID, targetID uuid.UUID, label string) *types.WorkspaceItemRelation {
	tb.Helper()
	r := &types.WorkspaceItemRelation{
		ID:         uuid.New(),
		DocumentID: docID,
		SourceID:   sourceID,
		TargetID:   targetID,
		Label:      label,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed relation: %v", err)
	}
	return r
}

func SeedObjective(tb testing.TB, ctx context.Context, tx *gorm.DB, docID *uuid.UUID, parentID *uuid.UUID, description string) *types.LearningObjective {
	tb.Helper()
	o := &types.LearningObjective{
		ID:          uuid.New(),
		DocumentID:  docID,
		ParentID:    parentID,
		Description: description,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed objective: %v", err)
	}
	return o
}
