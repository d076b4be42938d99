package service

import (
	"go.uber.org/zap"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/models"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

type catalogReader interface {
	Lookup(code string) (models.CourseCatalogEntry, bool)
	List(filter models.CourseFilter) ([]models.CourseCatalogEntry, int)
	Len() int
}

// CatalogService answers course catalog queries.
type CatalogService struct {
	catalog catalogReader
	logger  *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(catalog catalogReader, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, logger: logger}
}

// GetCourse fetches a single catalog entry by code.
func (s *CatalogService) GetCourse(code string) (*dto.CourseResponse, error) {
	entry, ok := s.catalog.Lookup(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found in catalog")
	}
	resp := dto.CourseFromModel(entry)
	return &resp, nil
}

// ListCourses pages through the catalog with optional search.
func (s *CatalogService) ListCourses(filter models.CourseFilter) ([]dto.CourseResponse, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	entries, total := s.catalog.List(filter)
	responses := make([]dto.CourseResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.CourseFromModel(entry))
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return responses, pagination, nil
}

// Size reports how many courses are loaded. Used by readiness checks.
func (s *CatalogService) Size() int {
	return s.catalog.Len()
}
