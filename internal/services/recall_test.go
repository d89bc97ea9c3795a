package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
	"github.com/Roblokonha/StudyVault/internal/learning/recall"
)

const photosynthesis = "Photosynthesis converts light energy into chemical energy inside chloroplasts. " +
	"Chlorophyll absorbs mostly blue and red wavelengths of visible light."

func TestRecallQuestion(t *testing.T) {
	h := newHarness(t)
	doc, _ := h.documents.Create(h.ctx, CreateDocumentInput{Filename: "bio.txt", ExtractedContent: photosynthesis})

	q, err := h.recall.Question(h.ctx, doc.ID, recall.DefaultOptions())
	if err != nil {
		t.Fatalf("Question: %v", err)
	}
	if q == nil || strings.Count(q.Question, recall.BlankMarker) != 1 {
		t.Fatalf("question: %+v", q)
	}

	failed, _ := h.documents.Create(h.ctx, CreateDocumentInput{Filename: "scan.png", ExtractedContent: extractor.FailureText("unsupported format '.png'")})
	if q, err := h.recall.Question(h.ctx, failed.ID, recall.DefaultOptions()); err != nil || q != nil {
		t.Fatalf("failed extraction: q=%+v err=%v", q, err)
	}
	if _, err := h.recall.Question(h.ctx, uuid.New(), recall.DefaultOptions()); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing document: got %v", err)
	}
}

func TestRecallDeck(t *testing.T) {
	h := newHarness(t)

	deck, err := h.recall.Deck(h.ctx)
	if err != nil {
		t.Fatalf("Deck(empty): %v", err)
	}
	if len(deck) != recall.DeckSize {
		t.Fatalf("empty library deck size: %d", len(deck))
	}
	for _, it := range deck {
		if it.Type != recall.TypeDefault {
			t.Fatalf("expected defaults only, got %s", it.Type)
		}
	}

	h.documents.Create(h.ctx, CreateDocumentInput{Filename: "a.txt", UserSummary: "Cells are the unit of life."})
	h.documents.Create(h.ctx, CreateDocumentInput{Filename: "b.txt", UserSummary: "Energy is conserved."})
	h.documents.Create(h.ctx, CreateDocumentInput{Filename: "c.txt", UserSummary: "Atoms bond."})
	h.documents.Create(h.ctx, CreateDocumentInput{Filename: "d.txt", ExtractedContent: photosynthesis})

	deck, err = h.recall.Deck(h.ctx)
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}
	if len(deck) != recall.DeckSize {
		t.Fatalf("deck size: %d", len(deck))
	}
	summaries := 0
	for _, it := range deck {
		if it.Type == recall.TypeDefinitionRecall {
			summaries++
		}
	}
	if summaries != 2 {
		t.Fatalf("summary questions: want=2 got=%d", summaries)
	}
}
