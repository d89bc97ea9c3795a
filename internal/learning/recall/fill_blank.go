// Package recall builds fill-in-the-blank questions from raw document text.
package recall

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Roblokonha/StudyVault/internal/ingestion/extractor"
)

const (
	BlankMarker     = "______"
	AnswerSeparator = " / "

	minSentenceWords = 6
)

type Options struct {
	BlankCount    int
	MinWordLength int
}

func DefaultOptions() Options {
	return Options{BlankCount: 1, MinWordLength: 4}
}

func (o Options) normalized() Options {
	if o.BlankCount < 1 {
		o.BlankCount = 1
	}
	if o.MinWordLength < 1 {
		o.MinWordLength = 4
	}
	return o
}

type FillInBlank struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	SourceSentence string `json:"source_sentence"`
}

// Generator owns the randomness behind sentence order and keyword choice.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator uses rng for every random choice. A nil rng is seeded from the clock.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// NewSeededGenerator is deterministic for a non-zero seed and clock seeded for zero.
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		return NewGenerator(nil)
	}
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// FillInBlank masks opts.BlankCount keywords in one sentence of text. It reports
// false when no sentence can carry that many blanks or when text is an extraction
// failure marker.
func (g *Generator) FillInBlank(text string, opts Options) (*FillInBlank, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fillInBlank(text, opts)
}

func (g *Generator) fillInBlank(text string, opts Options) (*FillInBlank, bool) {
	if strings.TrimSpace(text) == "" || extractor.IsFailure(text) {
		return nil, false
	}
	opts = opts.normalized()

	var sentences []string
	for _, s := range SplitSentences(text) {
		if len(strings.Fields(s)) >= minSentenceWords {
			sentences = append(sentences, s)
		}
	}
	g.rng.Shuffle(len(sentences), func(i, j int) { sentences[i], sentences[j] = sentences[j], sentences[i] })

	for _, sentence := range sentences {
		candidates := Keywords(sentence, opts.MinWordLength)
		if len(candidates) < opts.BlankCount {
			continue
		}
		picked := make([]string, 0, opts.BlankCount)
		for _, i := range g.rng.Perm(len(candidates))[:opts.BlankCount] {
			picked = append(picked, candidates[i])
		}
		sort.SliceStable(picked, func(i, j int) bool {
			return utf8.RuneCountInString(picked[i]) > utf8.RuneCountInString(picked[j])
		})

		question := sentence
		answers := make([]string, 0, len(picked))
		for _, word := range picked {
			next, original, ok := blankFirst(question, word)
			if !ok {
				continue
			}
			question = next
			answers = append(answers, original)
		}
		if len(answers) == opts.BlankCount {
			return &FillInBlank{
				Question:       question,
				Answer:         strings.Join(answers, AnswerSeparator),
				SourceSentence: sentence,
			}, true
		}
	}
	return nil, false
}

// Keywords returns the distinct lower-cased words of sentence that are at least
// minLen runes long and not stop words, in first-appearance order.
func Keywords(sentence string, minLen int) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, sp := range wordSpans(sentence) {
		w := strings.ToLower(sentence[sp.start:sp.end])
		if utf8.RuneCountInString(w) < minLen || IsStopWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// blankFirst replaces the first whole-word, case-insensitive occurrence of lower.
func blankFirst(s, lower string) (string, string, bool) {
	for _, sp := range wordSpans(s) {
		word := s[sp.start:sp.end]
		if word == BlankMarker || strings.ToLower(word) != lower {
			continue
		}
		return s[:sp.start] + BlankMarker + s[sp.end:], word, true
	}
	return s, "", false
}
