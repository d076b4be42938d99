package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/modern-research-group/course-validator/internal/models"
)

// CatalogRepository loads course catalog data from Postgres. The catalog is
// read in full at startup; prerequisite resolution never goes back to the
// database per course.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type courseRow struct {
	Code    string `db:"code"`
	Name    string `db:"name"`
	Credits string `db:"credits"`
}

type requirementRow struct {
	CourseCode string `db:"course_code"`
	Requires   string `db:"requires_code"`
}

type groupRow struct {
	CourseCode        string `db:"course_code"`
	GroupIndex        int    `db:"group_index"`
	Requires          string `db:"requires_code"`
	ConcurrentAllowed bool   `db:"concurrent_allowed"`
}

// LoadAll fetches every course with its prerequisite lists, corequisites and
// alternative prerequisite groups.
func (r *CatalogRepository) LoadAll(ctx context.Context) ([]models.CourseCatalogEntry, error) {
	var courses []courseRow
	if err := r.db.SelectContext(ctx, &courses, `SELECT code, name, credits FROM courses ORDER BY code`); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	var prereqs []requirementRow
	if err := r.db.SelectContext(ctx, &prereqs,
		`SELECT course_code, requires_code FROM course_prerequisites ORDER BY course_code, position`); err != nil {
		return nil, fmt.Errorf("load prerequisites: %w", err)
	}

	var coreqs []requirementRow
	if err := r.db.SelectContext(ctx, &coreqs,
		`SELECT course_code, requires_code FROM course_corequisites ORDER BY course_code, position`); err != nil {
		return nil, fmt.Errorf("load corequisites: %w", err)
	}

	var groups []groupRow
	if err := r.db.SelectContext(ctx, &groups,
		`SELECT course_code, group_index, requires_code, concurrent_allowed
         FROM prerequisite_groups ORDER BY course_code, group_index, position`); err != nil {
		return nil, fmt.Errorf("load prerequisite groups: %w", err)
	}

	prereqsByCourse := make(map[string][]string)
	for _, row := range prereqs {
		prereqsByCourse[row.CourseCode] = append(prereqsByCourse[row.CourseCode], row.Requires)
	}
	coreqsByCourse := make(map[string][]string)
	for _, row := range coreqs {
		coreqsByCourse[row.CourseCode] = append(coreqsByCourse[row.CourseCode], row.Requires)
	}

	groupsByCourse := make(map[string][]models.PrerequisiteGroup)
	groupIndex := make(map[string]map[int]int)
	for _, row := range groups {
		if groupIndex[row.CourseCode] == nil {
			groupIndex[row.CourseCode] = make(map[int]int)
		}
		idx, ok := groupIndex[row.CourseCode][row.GroupIndex]
		if !ok {
			groupsByCourse[row.CourseCode] = append(groupsByCourse[row.CourseCode], models.PrerequisiteGroup{
				ConcurrentAllowed: row.ConcurrentAllowed,
			})
			idx = len(groupsByCourse[row.CourseCode]) - 1
			groupIndex[row.CourseCode][row.GroupIndex] = idx
		}
		group := &groupsByCourse[row.CourseCode][idx]
		group.Courses = append(group.Courses, row.Requires)
	}

	entries := make([]models.CourseCatalogEntry, 0, len(courses))
	for _, row := range courses {
		entries = append(entries, models.CourseCatalogEntry{
			Code:               row.Code,
			Name:               row.Name,
			Credits:            row.Credits,
			Prerequisites:      prereqsByCourse[row.Code],
			Corequisites:       coreqsByCourse[row.Code],
			PrerequisiteGroups: groupsByCourse[row.Code],
		})
	}
	return entries, nil
}
