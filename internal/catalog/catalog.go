package catalog

import (
	"github.com/jasperwreed/toolfind/internal/models"
)

// Catalog is the static, read-only list of tools plus the category table
// used to label them.
type Catalog struct {
	tools      []models.Tool
	categories []models.Category
	byID       map[string]models.Category
	quick      []string
}

func New(tools []models.Tool, categories []models.Category, quick []string) *Catalog {
	c := &Catalog{
		tools:      append([]models.Tool(nil), tools...),
		categories: append([]models.Category(nil), categories...),
		byID:       make(map[string]models.Category, len(categories)),
		quick:      append([]string(nil), quick...),
	}
	for _, cat := range categories {
		c.byID[cat.ID] = cat
	}
	return c
}

// Tools returns the catalog in its original order. Callers must not
// modify the returned slice.
func (c *Catalog) Tools() []models.Tool {
	return c.tools
}

func (c *Catalog) Categories() []models.Category {
	return c.categories
}

func (c *Catalog) Len() int {
	return len(c.tools)
}

// CategoryOf resolves a category id for display. It plays no part in ranking.
func (c *Catalog) CategoryOf(id string) (models.Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// Popular returns the first n tools flagged popular, in catalog order.
func (c *Catalog) Popular(n int) []models.Tool {
	var popular []models.Tool
	for _, tool := range c.tools {
		if len(popular) >= n {
			break
		}
		if tool.Popular {
			popular = append(popular, tool)
		}
	}
	return popular
}

// QuickCategories returns the fixed shortcut categories shown when the
// palette has no query. Ids that are missing from the category table are
// skipped.
func (c *Catalog) QuickCategories() []models.Category {
	quick := make([]models.Category, 0, len(c.quick))
	for _, id := range c.quick {
		if cat, ok := c.byID[id]; ok {
			quick = append(quick, cat)
		}
	}
	return quick
}

// InCategory returns every tool filed under the category id.
func (c *Catalog) InCategory(id string) []models.Tool {
	var tools []models.Tool
	for _, tool := range c.tools {
		if tool.Category == id {
			tools = append(tools, tool)
		}
	}
	return tools
}

func (c *Catalog) Stats() *models.CatalogStats {
	stats := &models.CatalogStats{
		TotalTools:        len(c.tools),
		CategoryCount:     len(c.categories),
		CategoryBreakdown: make(map[string]int),
	}
	for _, tool := range c.tools {
		if tool.Popular {
			stats.PopularTools++
		}
		stats.CategoryBreakdown[tool.Category]++
	}
	return stats
}
