package graph

import (
	"bytes"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/Roblokonha/StudyVault/internal/domain"
)

func sample() ([]*types.WorkspaceItem, []*types.WorkspaceItemRelation) {
	doc := uuid.New()
	a := &types.WorkspaceItem{ID: uuid.New(), DocumentID: doc, Title: `Say "hi"`}
	b := &types.WorkspaceItem{ID: uuid.New(), DocumentID: doc, Title: "line one\nline two", ParentID: &a.ID}
	c := &types.WorkspaceItem{ID: uuid.New(), DocumentID: doc, Title: "C", ParentID: &a.ID}
	ghost := uuid.New()
	rels := []*types.WorkspaceItemRelation{
		{ID: uuid.New(), DocumentID: doc, SourceID: b.ID, TargetID: c.ID, Label: "leads to"},
		{ID: uuid.New(), DocumentID: doc, SourceID: b.ID, TargetID: ghost, Label: "dangling"},
	}
	return []*types.WorkspaceItem{a, b, c}, rels
}

func TestComposeCombinesExplicitAndStructuralEdges(t *testing.T) {
	items, rels := sample()
	g := Compose(items, rels)

	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 3)
	assert.Equal(t, EdgeExplicit, g.Edges[0].Kind)
	assert.Equal(t, "leads to", g.Edges[0].Label)
	for _, e := range g.Edges[1:] {
		assert.Equal(t, EdgeStructural, e.Kind)
		assert.Equal(t, StructuralLabel, e.Label)
		assert.Equal(t, items[0].ID, e.Source)
	}
}

func TestComposeEmpty(t *testing.T) {
	g := Compose(nil, nil)
	assert.True(t, g.Empty())
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Edges)
	assert.Equal(t, EmptyPlaceholder, RenderMermaid(g, nil))
}

func TestEscapeLabel(t *testing.T) {
	assert.Equal(t, "Say #quot;hi#quot;", EscapeLabel(`Say "hi"`))
	assert.Equal(t, "a<br/>b<br/>c", EscapeLabel("a\nb\r\nc"))
	assert.Equal(t, "x #124; y", EscapeLabel("x | y"))
}

func TestRenderMermaidStylesEveryEdge(t *testing.T) {
	items, rels := sample()
	g := Compose(items, rels)
	out := RenderMermaid(g, NewRandomStyler(rand.New(rand.NewSource(7))))

	assert.True(t, strings.HasPrefix(out, "graph TD;\n"))
	assert.Contains(t, out, `["Say #quot;hi#quot;"]`)
	assert.Contains(t, out, `["line one<br/>line two"]`)
	assert.Equal(t, len(g.Edges), strings.Count(out, "linkStyle "))
	assert.Contains(t, out, "linkStyle 2 ")
	assert.Equal(t, 2, strings.Count(out, "|is part of|"))
	assert.Contains(t, out, "|leads to|")
	assert.NotContains(t, out, "dangling")
}

func TestRenderMermaidStyleDoesNotChangeTopology(t *testing.T) {
	items, rels := sample()
	g := Compose(items, rels)
	strip := func(s string) []string {
		var ends []string
		for _, line := range strings.Split(s, "\n") {
			f := strings.Fields(line)
			if len(f) >= 3 && strings.HasPrefix(f[0], "node_") && strings.HasSuffix(line, ";") && !strings.Contains(line, "[") {
				ends = append(ends, f[0]+" "+strings.TrimSuffix(f[len(f)-1], ";"))
			}
		}
		return ends
	}
	a := strip(RenderMermaid(g, NewRandomStyler(rand.New(rand.NewSource(1)))))
	b := strip(RenderMermaid(g, NewRandomStyler(rand.New(rand.NewSource(99)))))
	assert.Equal(t, a, b)
	assert.Len(t, a, 3)
}

func TestFixedStyler(t *testing.T) {
	items, rels := sample()
	out := RenderMermaid(Compose(items, rels), FixedStyler{Connector: "==>", Color: "#FFD700"})
	assert.Equal(t, 3, strings.Count(out, " ==>|"))
	assert.Equal(t, 3, strings.Count(out, "stroke:#FFD700"))
}

func TestDepthsAndPNG(t *testing.T) {
	items, rels := sample()
	g := Compose(items, rels)
	d := Depths(g)
	assert.Equal(t, 0, d[items[0].ID])
	assert.Equal(t, 1, d[items[1].ID])

	raw, err := RenderPNG(g)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)

	raw, err = RenderPNG(Graph{})
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
}

func TestRenderPNGBoundsWideGraphs(t *testing.T) {
	var items []*types.WorkspaceItem
	doc := uuid.New()
	for i := 0; i < 5000; i++ {
		items = append(items, &types.WorkspaceItem{ID: uuid.New(), DocumentID: doc, Title: "root", Order: i})
	}
	raw, err := RenderPNG(Compose(items, nil))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	maxW := int(2*pngMargin + pngMaxCols*pngColWidth)
	maxH := int(2*pngMargin+float64(pngMaxRows-1)*pngRowGap+pngBoxH) + int(pngFooterH)
	assert.LessOrEqual(t, img.Bounds().Dx(), maxW)
	assert.LessOrEqual(t, img.Bounds().Dy(), maxH)
}

