package models

// PrerequisiteGroup is one alternative set of prerequisite courses. A group
// is satisfied only when every course in it is satisfied; satisfying any one
// group satisfies the whole requirement.
type PrerequisiteGroup struct {
	Courses           []string `json:"courses" db:"-"`
	ConcurrentAllowed bool     `json:"concurrent_allowed" db:"concurrent_allowed"`
}

// CourseCatalogEntry is the catalog record for a single course.
type CourseCatalogEntry struct {
	Code               string              `json:"code" db:"code"`
	Name               string              `json:"name" db:"name"`
	Credits            string              `json:"credits" db:"credits"`
	Prerequisites      []string            `json:"prerequisites,omitempty" db:"-"`
	Corequisites       []string            `json:"corequisites,omitempty" db:"-"`
	PrerequisiteGroups []PrerequisiteGroup `json:"prerequisite_groups,omitempty" db:"-"`
}

// HasPrerequisites reports whether the entry declares any prerequisite
// requirement at all, via the primary list or via groups.
func (e CourseCatalogEntry) HasPrerequisites() bool {
	if len(e.Prerequisites) > 0 {
		return true
	}
	for _, group := range e.PrerequisiteGroups {
		if len(group.Courses) > 0 {
			return true
		}
	}
	return false
}

// CourseFilter scopes catalog listing queries.
type CourseFilter struct {
	Search   string
	Page     int
	PageSize int
}

// Pagination carries list paging metadata on API responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
