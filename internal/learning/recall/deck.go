package recall

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
)

const (
	DeckSize            = 3
	maxSummaryQuestions = 2
)

type ItemType string

const (
	TypeDefinitionRecall ItemType = "definition_recall"
	TypeFillBlank        ItemType = "fill_blank"
	TypeDefault          ItemType = "default"
	TypeError            ItemType = "error"
)

type Item struct {
	Q           string     `json:"q"`
	A           string     `json:"a"`
	Cat         string     `json:"cat"`
	SourceDocID *uuid.UUID `json:"source_doc_id,omitempty"`
	Type        ItemType   `json:"type"`
}

// Source is the slice of a document the deck draws from.
type Source struct {
	ID       uuid.UUID
	Filename string
	Category string
	Summary  string
	Content  string
}

var defaultItems = []Item{
	{Q: "How does a `list` differ from a `tuple` in Python?", A: "A list is mutable, a tuple is immutable.", Cat: "Programming"},
	{Q: "What does `git push` do?", A: "Uploads local commits to the remote repository.", Cat: "Programming"},
	{Q: "What does API stand for?", A: "Application Programming Interface", Cat: "Programming"},
	{Q: "What does GDP stand for?", A: "Gross Domestic Product", Cat: "Economics"},
	{Q: "What is inflation?", A: "A sustained rise in the general price level of goods and services, and the loss of a currency's purchasing power.", Cat: "Economics"},
	{Q: "What is the derivative of f(x) = x²?", A: "f'(x) = 2x", Cat: "Mathematics"},
	{Q: "What is the approximate value of π?", A: "3.14159", Cat: "Mathematics"},
	{Q: "Who formulated the law of universal gravitation?", A: "Isaac Newton", Cat: "Physics"},
	{Q: "What is the chemical formula of water?", A: "H₂O", Cat: "Chemistry"},
	{Q: "What is the difference between 'your' and 'you're'?", A: "'Your' is a possessive adjective; 'you're' is short for 'you are'.", Cat: "Languages"},
	{Q: "What do the letters in S.M.A.R.T. goals stand for?", A: "Specific, Measurable, Achievable, Relevant, Time-bound", Cat: "Soft skills"},
	{Q: "How does supervised learning differ from unsupervised learning?", A: "Supervised learning trains on labelled data; unsupervised learning works on unlabelled data.", Cat: "AI/ML"},
}

// EmptyDeckItem is returned when no question of any kind is available.
var EmptyDeckItem = Item{
	Q:    "No questions available right now. Upload and summarize more documents!",
	Cat:  "System",
	Type: TypeError,
}

// Deck mixes up to two summary-recall questions, fill-in-the-blank questions from
// other documents and general defaults into at most DeckSize shuffled items.
func (g *Generator) Deck(summaries, contents []Source) []Item {
	g.mu.Lock()
	defer g.mu.Unlock()

	var items []Item
	used := map[uuid.UUID]struct{}{}

	summaries = append([]Source(nil), summaries...)
	g.rng.Shuffle(len(summaries), func(i, j int) { summaries[i], summaries[j] = summaries[j], summaries[i] })
	for _, s := range summaries {
		if len(items) >= maxSummaryQuestions {
			break
		}
		if strings.TrimSpace(s.Summary) == "" {
			continue
		}
		id := s.ID
		items = append(items, Item{
			Q:           fmt.Sprintf("Restate the main idea or definition you summarized for '%s'.", s.Filename),
			A:           s.Summary,
			Cat:         orDefault(s.Category, "From your summary"),
			SourceDocID: &id,
			Type:        TypeDefinitionRecall,
		})
		used[s.ID] = struct{}{}
	}

	var pool []Source
	for _, s := range contents {
		if _, taken := used[s.ID]; taken {
			continue
		}
		if strings.TrimSpace(s.Content) == "" || extractor.IsFailure(s.Content) {
			continue
		}
		pool = append(pool, s)
	}
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, s := range pool {
		if len(items) >= DeckSize {
			break
		}
		attempts := 1 + g.rng.Intn(2)
		for a := 0; a < attempts && len(items) < DeckSize; a++ {
			q, ok := g.fillInBlank(s.Content, DefaultOptions())
			if !ok {
				break
			}
			id := s.ID
			items = append(items, Item{
				Q:           q.Question,
				A:           q.Answer,
				Cat:         orDefault(s.Category, "From your documents"),
				SourceDocID: &id,
				Type:        TypeFillBlank,
			})
		}
	}

	if needed := DeckSize - len(items); needed > 0 {
		for _, i := range g.rng.Perm(len(defaultItems)) {
			if needed == 0 {
				break
			}
			it := defaultItems[i]
			it.Type = TypeDefault
			items = append(items, it)
			needed--
		}
	}

	g.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	if len(items) > DeckSize {
		items = items[:DeckSize]
	}
	if len(items) == 0 {
		return []Item{EmptyDeckItem}
	}
	return items
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
