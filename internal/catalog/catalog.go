// Package catalog provides read-only course metadata lookup. A Catalog is
// built once, from a JSON file or from the database, and is safe for
// concurrent readers; it is never mutated after construction.
package catalog

import (
	"sort"
	"strings"

	"github.com/modern-research-group/course-validator/internal/models"
)

// Catalog is an immutable course lookup keyed by course code.
type Catalog struct {
	entries map[string]models.CourseCatalogEntry
}

// New builds a Catalog from the provided entries. Later duplicates of a
// course code replace earlier ones.
func New(entries []models.CourseCatalogEntry) *Catalog {
	byCode := make(map[string]models.CourseCatalogEntry, len(entries))
	for _, entry := range entries {
		if entry.Code == "" {
			continue
		}
		byCode[entry.Code] = entry
	}
	return &Catalog{entries: byCode}
}

// Lookup returns the entry for the given course code. Absence is not an
// error: the engine reports it as a NotFound verdict.
func (c *Catalog) Lookup(code string) (models.CourseCatalogEntry, bool) {
	entry, ok := c.entries[code]
	return entry, ok
}

// Len reports the number of distinct courses in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// List returns one page of entries matching the filter, ordered by course
// code, together with the total match count.
func (c *Catalog) List(filter models.CourseFilter) ([]models.CourseCatalogEntry, int) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.CourseCatalogEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Code), search) &&
			!strings.Contains(strings.ToLower(entry.Name), search) {
			continue
		}
		matched = append(matched, entry)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		return matched, total
	}
	start := (page - 1) * size
	if start >= total {
		return []models.CourseCatalogEntry{}, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total
}
