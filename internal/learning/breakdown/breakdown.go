// Package breakdown seeds a document's workspace from a template catalog.
package breakdown

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	types "github.com/Roblokonha/StudyVault/internal/domain"
	"github.com/Roblokonha/StudyVault/internal/platform/logger"
)

const catalogPathEnv = "BREAKDOWN_TEMPLATES_YAML"

//go:embed templates.yaml
var templatesFS embed.FS

type Node struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Children []Node `yaml:"children"`
}

type Template struct {
	Name  string   `yaml:"name"`
	Match []string `yaml:"match"`
	Roots []Node   `yaml:"roots"`
}

type Catalog struct {
	Catalog   string     `yaml:"catalog"`
	Version   int        `yaml:"version"`
	Templates []Template `yaml:"templates"`
}

var (
	catalogOnce  sync.Once
	catalogCache *Catalog
	catalogErr   error
)

// Default returns the configured catalog, or an empty one when it cannot be loaded.
func Default(log *logger.Logger) *Catalog {
	catalogOnce.Do(func() {
		catalogCache, catalogErr = load()
	})
	if catalogErr != nil {
		if log != nil {
			log.Warn("breakdown: template catalog load failed; using fallback root only", "error", catalogErr)
		}
		return &Catalog{Catalog: "breakdown"}
	}
	return catalogCache
}

func load() (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path := strings.TrimSpace(os.Getenv(catalogPathEnv)); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = templatesFS.ReadFile("templates.yaml")
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Catalog) != "breakdown" {
		return nil, fmt.Errorf("unexpected catalog: %q", c.Catalog)
	}
	for _, t := range c.Templates {
		if strings.TrimSpace(t.Name) == "" {
			return nil, errors.New("template name is required")
		}
		if len(t.Match) == 0 {
			return nil, fmt.Errorf("template %s: no match keywords", t.Name)
		}
		if err := validateNodes(t.Name, t.Roots); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func validateNodes(name string, nodes []Node) error {
	for _, n := range nodes {
		if strings.TrimSpace(n.Title) == "" {
			return fmt.Errorf("template %s: node title is required", name)
		}
		if err := validateNodes(name, n.Children); err != nil {
			return err
		}
	}
	return nil
}

// Match picks the first template with a keyword contained in the lower-cased filename.
func (c *Catalog) Match(filename string) (Template, bool) {
	lower := strings.ToLower(filename)
	for _, t := range c.Templates {
		for _, kw := range t.Match {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" && strings.Contains(lower, kw) {
				return t, true
			}
		}
	}
	return Template{}, false
}

// Expand produces the rows for doc, parents before children. Orders start at 1
// within each sibling list. Without a matching template a single root is produced.
func (c *Catalog) Expand(doc *types.Document) []*types.WorkspaceItem {
	roots := []Node{{Title: fmt.Sprintf("Map for '%s'", doc.Filename)}}
	if t, ok := c.Match(doc.Filename); ok && len(t.Roots) > 0 {
		roots = t.Roots
	}
	var out []*types.WorkspaceItem
	var walk func(nodes []Node, parent *uuid.UUID)
	walk = func(nodes []Node, parent *uuid.UUID) {
		for i, n := range nodes {
			it := &types.WorkspaceItem{
				ID:         uuid.New(),
				DocumentID: doc.ID,
				ParentID:   parent,
				Title:      strings.TrimSpace(n.Title),
				Content:    strings.TrimSpace(n.Content),
				Order:      i + 1,
			}
			out = append(out, it)
			id := it.ID
			walk(n.Children, &id)
		}
	}
	walk(roots, nil)
	return out
}
