package dto

import "github.com/modern-research-group/course-validator/internal/models"

// CourseResponse exposes one catalog entry.
type CourseResponse struct {
	Code               string                     `json:"code"`
	Name               string                     `json:"name"`
	Credits            string                     `json:"credits"`
	Prerequisites      []string                   `json:"prerequisites,omitempty"`
	Corequisites       []string                   `json:"corequisites,omitempty"`
	PrerequisiteGroups []models.PrerequisiteGroup `json:"prerequisite_groups,omitempty"`
}

// CourseFromModel maps a catalog entry to its response shape.
func CourseFromModel(entry models.CourseCatalogEntry) CourseResponse {
	return CourseResponse{
		Code:               entry.Code,
		Name:               entry.Name,
		Credits:            entry.Credits,
		Prerequisites:      entry.Prerequisites,
		Corequisites:       entry.Corequisites,
		PrerequisiteGroups: entry.PrerequisiteGroups,
	}
}
