package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID      = errors.New("duplicate tool id")
	ErrDuplicateSlug    = errors.New("duplicate tool slug")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingField     = errors.New("missing required field")
	ErrUnknownQuickLink = errors.New("unknown quick category")
)

// Validate checks the invariants the search index assumes but never
// enforces: unique ids and slugs, and categories that resolve.
func (c *Catalog) Validate() error {
	var errs []error

	ids := make(map[string]bool, len(c.tools))
	slugs := make(map[string]bool, len(c.tools))

	for i, tool := range c.tools {
		if tool.ID == "" || tool.Slug == "" || tool.Name == "" {
			errs = append(errs, fmt.Errorf("tool #%d (%q): %w", i, tool.Name, ErrMissingField))
		}
		if tool.ID != "" {
			if ids[tool.ID] {
				errs = append(errs, fmt.Errorf("%q: %w", tool.ID, ErrDuplicateID))
			}
			ids[tool.ID] = true
		}
		if tool.Slug != "" {
			if slugs[tool.Slug] {
				errs = append(errs, fmt.Errorf("%q: %w", tool.Slug, ErrDuplicateSlug))
			}
			slugs[tool.Slug] = true
		}
		if _, ok := c.byID[tool.Category]; !ok {
			errs = append(errs, fmt.Errorf("tool %q category %q: %w", tool.ID, tool.Category, ErrUnknownCategory))
		}
	}

	for _, id := range c.quick {
		if _, ok := c.byID[id]; !ok {
			errs = append(errs, fmt.Errorf("%q: %w", id, ErrUnknownQuickLink))
		}
	}

	return errors.Join(errs...)
}
