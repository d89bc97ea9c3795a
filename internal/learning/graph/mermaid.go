package graph

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmptyPlaceholder is rendered instead of markup when a workspace has no items.
const EmptyPlaceholder = "No items in this workspace yet. Create the first one!"

var (
	Connectors = []string{"-->", "-.->", "==>", "--o"}
	Colors     = []string{"#87CEEB", "#FFD700", "#98FB98", "#FFB6C1", "#F0E68C"}
)

// Style is cosmetic only. It never changes which nodes an edge connects.
type Style struct {
	Connector string
	Color     string
}

type Styler interface {
	Pick(e Edge) Style
}

type randomStyler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomStyler picks a connector and color per edge, independently. A nil rng
// is seeded from the clock.
func NewRandomStyler(rng *rand.Rand) Styler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &randomStyler{rng: rng}
}

func (s *randomStyler) Pick(Edge) Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Style{
		Connector: Connectors[s.rng.Intn(len(Connectors))],
		Color:     Colors[s.rng.Intn(len(Colors))],
	}
}

// FixedStyler always returns the same style.
type FixedStyler Style

func (f FixedStyler) Pick(Edge) Style { return Style(f) }

var labelReplacer = strings.NewReplacer(
	`"`, "#quot;",
	"\r\n", "<br/>",
	"\n", "<br/>",
	"\r", "",
	"|", "#124;",
)

// EscapeLabel makes s safe to embed in a quoted Mermaid label.
func EscapeLabel(s string) string {
	return labelReplacer.Replace(s)
}

func mermaidID(id uuid.UUID) string {
	return "node_" + strings.ReplaceAll(id.String(), "-", "")
}

// RenderMermaid emits a top-down flowchart. Each edge gets a linkStyle line whose
// index matches the edge's position.
func RenderMermaid(g Graph, styler Styler) string {
	if g.Empty() {
		return EmptyPlaceholder
	}
	if styler == nil {
		styler = FixedStyler{Connector: Connectors[0], Color: Colors[0]}
	}
	var b strings.Builder
	b.WriteString("graph TD;\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "    %s[\"%s\"];\n", mermaidID(n.ID), EscapeLabel(n.Label))
	}
	var links strings.Builder
	for i, e := range g.Edges {
		st := styler.Pick(e)
		if label := strings.TrimSpace(e.Label); label != "" {
			fmt.Fprintf(&b, "    %s %s|%s| %s;\n", mermaidID(e.Source), st.Connector, EscapeLabel(label), mermaidID(e.Target))
		} else {
			fmt.Fprintf(&b, "    %s %s %s;\n", mermaidID(e.Source), st.Connector, mermaidID(e.Target))
		}
		fmt.Fprintf(&links, "    linkStyle %d stroke:%s,stroke-width:2px;\n", i, st.Color)
	}
	b.WriteString("\n")
	b.WriteString(links.String())
	return b.String()
}
