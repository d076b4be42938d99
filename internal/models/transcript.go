package models

// SemesterType distinguishes regular and summer terms.
type SemesterType string

const (
	SemesterFirst  SemesterType = "First"
	SemesterSecond SemesterType = "Second"
	SemesterSummer SemesterType = "Summer"
)

// Grade is a letter grade as it appears on a transcript.
type Grade string

// Recognised transcript grades.
const (
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
	GradeDPlus Grade = "D+"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
	GradeW     Grade = "W"
	GradeP     Grade = "P"
	GradeN     Grade = "N"
)

var passingGrades = map[Grade]struct{}{
	GradeA: {}, GradeBPlus: {}, GradeB: {}, GradeCPlus: {},
	GradeC: {}, GradeDPlus: {}, GradeD: {}, GradeP: {},
}

var knownGrades = map[Grade]struct{}{
	GradeA: {}, GradeBPlus: {}, GradeB: {}, GradeCPlus: {},
	GradeC: {}, GradeDPlus: {}, GradeD: {}, GradeF: {},
	GradeW: {}, GradeP: {}, GradeN: {},
}

// IsPassing reports whether the grade satisfies a prerequisite requirement.
func (g Grade) IsPassing() bool {
	_, ok := passingGrades[g]
	return ok
}

// IsFailing reports whether the grade counts as a failed attempt.
func (g Grade) IsFailing() bool {
	return g == GradeF
}

// IsKnown reports whether the grade is a recognised transcript token.
func (g Grade) IsKnown() bool {
	_, ok := knownGrades[g]
	return ok
}

// GradePoints returns the 4.0-scale value and whether the grade contributes
// to GPA. Withdrawn, pass/fail and ungraded entries do not contribute.
func (g Grade) GradePoints() (float64, bool) {
	switch g {
	case GradeA:
		return 4.0, true
	case GradeBPlus:
		return 3.5, true
	case GradeB:
		return 3.0, true
	case GradeCPlus:
		return 2.5, true
	case GradeC:
		return 2.0, true
	case GradeDPlus:
		return 1.5, true
	case GradeD:
		return 1.0, true
	case GradeF:
		return 0.0, true
	default:
		return 0, false
	}
}

// CourseRegistration is a single course attempt within a semester.
type CourseRegistration struct {
	Code    string `json:"code" db:"code"`
	Name    string `json:"name" db:"name"`
	Grade   Grade  `json:"grade" db:"grade"`
	Credits int    `json:"credits" db:"credits"`
}

// Semester groups the registrations of one academic term. Semesters on a
// transcript are ordered chronologically; the ordering is load-bearing for
// prerequisite evaluation, not just display.
type Semester struct {
	Label         string               `json:"semester"`
	Type          SemesterType         `json:"semester_type"`
	Year          string               `json:"year"`
	SemesterGPA   *float64             `json:"sem_gpa,omitempty"`
	CumulativeGPA *float64             `json:"cum_gpa,omitempty"`
	Registrations []CourseRegistration `json:"courses"`
}

// TotalCredits sums the declared credit counts of all registrations.
func (s Semester) TotalCredits() int {
	total := 0
	for _, reg := range s.Registrations {
		total += reg.Credits
	}
	return total
}

// StudentInfo carries the transcript header fields.
type StudentInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	FieldOfStudy  string `json:"field_of_study"`
	DateAdmission string `json:"date_admission"`
}

// Transcript is a student's complete registration history. It is built once
// from external data and never mutated during validation.
type Transcript struct {
	Student   StudentInfo `json:"student_info"`
	Semesters []Semester  `json:"semesters"`
}
