package breakdown

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/learning/forest"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

func TestEmbeddedCatalogParses(t *testing.T) {
	c := Default(logger.Nop())
	require.Len(t, c.Templates, 2)
	_, ok := c.Match("Lecture-AI-Voice-week1.pdf")
	assert.True(t, ok)
}

func TestExpandTemplate(t *testing.T) {
	doc := &types.Document{ID: uuid.New(), Filename: "physics_dientruong_ch1.docx"}
	items := Default(logger.Nop()).Expand(doc)
	require.Len(t, items, 6)

	tree := forest.BuildItemTree(items)
	require.Len(t, tree, 1)
	assert.Equal(t, "Electric Field Theory", tree[0].Title)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "Electric Field Strength Vector (E)", tree[0].Children[1].Title)
	assert.Len(t, tree[0].Children[1].Children, 2)
	for _, it := range items {
		assert.Equal(t, doc.ID, it.DocumentID)
	}
}

func TestExpandFallbackRoot(t *testing.T) {
	doc := &types.Document{ID: uuid.New(), Filename: "history.txt"}
	items := Default(logger.Nop()).Expand(doc)
	require.Len(t, items, 1)
	assert.Equal(t, "Map for 'history.txt'", items[0].Title)
	assert.Nil(t, items[0].ParentID)
	assert.Equal(t, 1, items[0].Order)
}

func TestParseRejectsBadCatalog(t *testing.T) {
	_, err := Parse([]byte("catalog: other\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("catalog: breakdown\ntemplates:\n  - name: x\n    match: [a]\n    roots:\n      - content: no title\n"))
	assert.Error(t, err)
}
