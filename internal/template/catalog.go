package template

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Summary is the listing row for a template.
type Summary struct {
	NumericID    int
	ID           string
	Name         string
	BusinessType string
	Version      string
}

// Catalog loads templates from a directory of JSON files. It is a static,
// seeded registry; the aggregation core only ever consumes the resulting
// tree shape.
type Catalog struct {
	dir string
}

func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

type catalogEntry struct {
	Index  int
	Path   string
	Schema *Schema
}

// List returns summaries for every parseable template in the directory.
// Invalid files are skipped rather than failing the listing.
func (c *Catalog) List(ctx context.Context) ([]Summary, error) {
	entries, err := c.loadEntries()
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, Summary{
			NumericID:    e.Index,
			ID:           e.Schema.ID,
			Name:         e.Schema.Name,
			BusinessType: e.Schema.BusinessType,
			Version:      e.Schema.Version,
		})
	}
	return summaries, nil
}

// ListForBusinessType filters the listing to templates matching the given
// business-type key. An empty key returns everything.
func (c *Catalog) ListForBusinessType(ctx context.Context, businessType string) ([]Summary, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	if businessType == "" {
		return all, nil
	}
	filtered := all[:0]
	for _, s := range all {
		if s.BusinessType == "" || strings.EqualFold(s.BusinessType, businessType) {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// Get resolves a template by file stem, filename, schema ID, display name
// (all case-insensitive) or the integer selector shown by List.
func (c *Catalog) Get(ctx context.Context, name string) (*Schema, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, fmt.Errorf("template '%s' not found: empty template name", name)
	}

	entries, err := c.loadEntries()
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found: listing templates: %w", name, err)
	}

	for i := range entries {
		e := &entries[i]
		fileStem := strings.TrimSuffix(filepath.Base(e.Path), filepath.Ext(e.Path))
		if strings.EqualFold(fileStem, input) ||
			strings.EqualFold(filepath.Base(e.Path), input) ||
			strings.EqualFold(e.Schema.ID, input) ||
			strings.EqualFold(e.Schema.Name, input) {
			return e.Schema, nil
		}
	}

	if numericID, err := strconv.Atoi(input); err == nil {
		for i := range entries {
			if entries[i].Index == numericID {
				return entries[i].Schema, nil
			}
		}
	}

	return nil, fmt.Errorf("template '%s' not found in %s", name, c.dir)
}

func (c *Catalog) loadEntries() ([]catalogEntry, error) {
	files, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return nil, err
	}

	entries := make([]catalogEntry, 0, len(files))
	for _, file := range files {
		schema, err := LoadSchema(file)
		if err != nil {
			continue // skip invalid templates
		}
		entries = append(entries, catalogEntry{
			Index:  len(entries) + 1,
			Path:   file,
			Schema: schema,
		})
	}
	return entries, nil
}
