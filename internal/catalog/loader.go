package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	appErrors "github.com/modern-research-group/course-validator/pkg/errors"

	"github.com/modern-research-group/course-validator/internal/models"
)

// courseDataFile mirrors the course data JSON layout. Course lists are split
// across several top-level sections; general education courses are further
// grouped by category.
type courseDataFile struct {
	Courses                      []models.CourseCatalogEntry            `json:"courses"`
	IndustrialEngineeringCourses []models.CourseCatalogEntry            `json:"industrial_engineering_courses"`
	OtherRelatedCourses          []models.CourseCatalogEntry            `json:"other_related_courses"`
	GenEdCourses                 map[string][]models.CourseCatalogEntry `json:"gen_ed_courses"`
	TechnicalElectives           []models.CourseCatalogEntry            `json:"technical_electives"`
}

func (f courseDataFile) flatten() []models.CourseCatalogEntry {
	entries := make([]models.CourseCatalogEntry, 0,
		len(f.Courses)+len(f.IndustrialEngineeringCourses)+len(f.OtherRelatedCourses)+len(f.TechnicalElectives))
	entries = append(entries, f.Courses...)
	entries = append(entries, f.IndustrialEngineeringCourses...)
	entries = append(entries, f.OtherRelatedCourses...)
	for _, group := range f.GenEdCourses {
		entries = append(entries, group...)
	}
	entries = append(entries, f.TechnicalElectives...)
	return entries
}

// LoadFile reads a course data JSON file and builds a Catalog. A load
// failure is fatal for every transcript depending on the catalog and is
// returned as an error, never silently treated as "no prerequisites".
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, appErrors.Wrap(fmt.Errorf("read course data %s: %w", path, err), appErrors.ErrCatalogUnavailable)
	}
	return Parse(raw)
}

// Parse decodes course data JSON bytes into a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	var file courseDataFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, appErrors.Wrap(fmt.Errorf("decode course data: %w", err), appErrors.ErrCatalogUnavailable)
	}

	entries := file.flatten()
	if len(entries) == 0 {
		return nil, appErrors.ErrCatalogEmpty
	}
	for _, entry := range entries {
		if entry.Code == "" {
			return nil, appErrors.Wrap(fmt.Errorf("course data entry %q has no code", entry.Name), appErrors.ErrCatalogEmpty)
		}
	}
	return New(entries), nil
}
