package models

import "time"

// VerdictStatus is the terminal classification of a registration.
type VerdictStatus string

const (
	// VerdictValid marks a permissible registration.
	VerdictValid VerdictStatus = "VALID"
	// VerdictInvalid marks a registration that broke a rule.
	VerdictInvalid VerdictStatus = "INVALID"
	// VerdictNotFound marks a registration whose course code is absent from
	// the catalog; it is excluded from prerequisite reasoning but still counted.
	VerdictNotFound VerdictStatus = "NOT_FOUND"
)

// ReasonKind categorises why a registration is invalid.
type ReasonKind string

const (
	// ReasonPrerequisite covers an unmet, withdrawn or cascaded-invalid
	// prerequisite from the primary requirement list.
	ReasonPrerequisite ReasonKind = "prerequisite"
	// ReasonPrerequisiteGroup means no alternative group was satisfied.
	ReasonPrerequisiteGroup ReasonKind = "prerequisite_group"
	// ReasonMalformedData flags a registration whose record could not be
	// interpreted (missing code, unknown grade token).
	ReasonMalformedData ReasonKind = "malformed_data"
)

// VerdictReason explains an invalid verdict.
type VerdictReason struct {
	Kind     ReasonKind `json:"kind"`
	Message  string     `json:"message"`
	Courses  []string   `json:"courses,omitempty"`
	Cascaded bool       `json:"cascaded,omitempty"`
}

// ValidationVerdict is the outcome for one registration.
type ValidationVerdict struct {
	Status VerdictStatus  `json:"status"`
	Reason *VerdictReason `json:"reason,omitempty"`
}

// CreditWarning is a non-blocking overload notice attached to a semester.
// It never invalidates a registration.
type CreditWarning struct {
	Limit      int    `json:"limit"`
	Registered int    `json:"registered"`
	Message    string `json:"message"`
}

// CourseVerdictRow is one line of a semester's course table.
type CourseVerdictRow struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Grade   Grade          `json:"grade"`
	Credits int            `json:"credits"`
	Status  VerdictStatus  `json:"status"`
	Reason  *VerdictReason `json:"reason,omitempty"`
}

// SemesterSummary aggregates one semester's verdicts alongside credit and
// GPA figures. The GPA fields reported on the transcript are echoed as-is;
// the recalculated figures are derived from the registrations.
type SemesterSummary struct {
	Label                 string             `json:"semester"`
	Type                  SemesterType       `json:"semester_type"`
	Year                  string             `json:"year"`
	TotalCredits          int                `json:"total_credits"`
	ReportedSemesterGPA   *float64           `json:"reported_sem_gpa,omitempty"`
	ReportedCumulativeGPA *float64           `json:"reported_cum_gpa,omitempty"`
	SemesterGPA           float64            `json:"semester_gpa"`
	CumulativeGPA         float64            `json:"cumulative_gpa"`
	ValidSemesterGPA      float64            `json:"valid_semester_gpa"`
	ValidCumulativeGPA    float64            `json:"valid_cumulative_gpa"`
	HasInvalid            bool               `json:"has_invalid"`
	CreditWarning         *CreditWarning     `json:"credit_warning,omitempty"`
	Courses               []CourseVerdictRow `json:"courses"`
}

// InvalidRegistration is one entry of the invalid-registrations detail block.
type InvalidRegistration struct {
	Semester string     `json:"semester"`
	Code     string     `json:"code"`
	Name     string     `json:"name"`
	Kind     ReasonKind `json:"kind"`
	Reason   string     `json:"reason"`
	Cascaded bool       `json:"cascaded,omitempty"`
}

// NotFoundCourse records a registration whose code is missing from the catalog.
type NotFoundCourse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Semester string `json:"semester"`
}

// ValidationResult is the complete, immutable outcome of validating one
// transcript against one catalog.
type ValidationResult struct {
	Student              StudentInfo           `json:"student_info"`
	GeneratedAt          time.Time             `json:"generated_at"`
	SemestersAnalyzed    int                   `json:"semesters_analyzed"`
	RegistrationsChecked int                   `json:"registrations_checked"`
	InvalidCount         int                   `json:"invalid_count"`
	Invalid              []InvalidRegistration `json:"invalid_registrations,omitempty"`
	NotFound             []NotFoundCourse      `json:"courses_not_found,omitempty"`
	Semesters            []SemesterSummary     `json:"semesters"`
}
