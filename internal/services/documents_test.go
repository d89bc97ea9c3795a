package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/data/repos/testutil"
	types "github.com/Roblokonha/StudyVault/internal/domain"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

func TestCreateDocumentDefaults(t *testing.T) {
	h := newHarness(t)
	doc, err := h.documents.Create(h.ctx, CreateDocumentInput{Filename: " cells.txt ", ExtractedContent: "Cells divide.", Keywords: []string{"cell"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.Filename != "cells.txt" || doc.Category != types.DefaultCategory {
		t.Fatalf("defaults: %+v", doc)
	}
	if string(doc.Keywords) != `["cell"]` {
		t.Fatalf("keywords: %s", doc.Keywords)
	}
	if _, err := h.documents.Create(h.ctx, CreateDocumentInput{}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("missing filename: got %v", err)
	}
}

func TestUploadStoresFailureMarker(t *testing.T) {
	h := newHarness(t)
	doc, err := h.documents.Upload(h.ctx, "scan.png", "image/png", "", []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !extractor.IsFailure(doc.ExtractedContent) {
		t.Fatalf("expected failure marker, got %q", doc.ExtractedContent)
	}

	doc, err = h.documents.Upload(h.ctx, "notes.txt", "text/plain", "Biology", []byte("Mitochondria produce energy for the cell."))
	if err != nil {
		t.Fatalf("Upload(text): %v", err)
	}
	if doc.ExtractedContent != "Mitochondria produce energy for the cell." || doc.Category != "Biology" {
		t.Fatalf("text upload: %+v", doc)
	}
}

func TestUpdateSummaryAndList(t *testing.T) {
	h := newHarness(t)
	doc, _ := h.documents.Create(h.ctx, CreateDocumentInput{Filename: "a.txt"})
	got, err := h.documents.UpdateSummary(h.ctx, doc.ID, "  the gist ")
	if err != nil || got.UserSummary != "the gist" {
		t.Fatalf("UpdateSummary: %v %+v", err, got)
	}
	if _, err := h.documents.UpdateSummary(h.ctx, uuid.New(), "x"); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing document: got %v", err)
	}
	docs, err := h.documents.List(h.ctx)
	if err != nil || len(docs) != 1 {
		t.Fatalf("List: %v len=%d", err, len(docs))
	}
}

func TestDeleteDocumentCascades(t *testing.T) {
	h := newHarness(t)
	doc, _ := h.seedTree(t)
	keep := testutil.SeedDocument(t, h.ctx, h.db, "other.txt")
	root := testutil.SeedObjective(t, h.ctx, h.db, &doc.ID, nil, "root goal")
	testutil.SeedObjective(t, h.ctx, h.db, &doc.ID, &root.ID, "sub goal")
	testutil.SeedObjective(t, h.ctx, h.db, &keep.ID, nil, "other goal")

	if err := h.documents.Delete(h.ctx, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	dbc := dbctx.Context{Ctx: h.ctx}
	if n, _ := h.repos.Items.CountByDocument(dbc, doc.ID); n != 0 {
		t.Fatalf("items left: %d", n)
	}
	if rels, _ := h.repos.Relations.ListByDocument(dbc, doc.ID); len(rels) != 0 {
		t.Fatalf("relations left: %d", len(rels))
	}
	if objs, _ := h.repos.Objectives.List(dbc, nil); len(objs) != 1 {
		t.Fatalf("objectives left: %d", len(objs))
	}
	if _, err := h.documents.Get(h.ctx, doc.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("Get after delete: got %v", err)
	}
	if err := h.documents.Delete(h.ctx, doc.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}
