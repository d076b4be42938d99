package validation

import (
	"time"

	"github.com/modern-research-group/course-validator/internal/models"
)

// aggregate assembles the immutable ValidationResult from the per-semester
// verdict rows and credit warnings. It performs no I/O and no formatting;
// every field the textual report renderer needs must be present here.
func aggregate(
	transcript models.Transcript,
	rows [][]models.CourseVerdictRow,
	warnings []*models.CreditWarning,
	now time.Time,
) models.ValidationResult {
	result := models.ValidationResult{
		Student:           transcript.Student,
		GeneratedAt:       now,
		SemestersAnalyzed: len(transcript.Semesters),
		Semesters:         make([]models.SemesterSummary, 0, len(transcript.Semesters)),
	}

	var allRegs, validRegs []models.CourseRegistration

	for i, semester := range transcript.Semesters {
		semesterRows := rows[i]

		semRegs := semester.Registrations
		semValidRegs := make([]models.CourseRegistration, 0, len(semRegs))
		hasInvalid := false

		for j, row := range semesterRows {
			result.RegistrationsChecked++
			switch row.Status {
			case models.VerdictInvalid:
				hasInvalid = true
				result.InvalidCount++
				invalid := models.InvalidRegistration{
					Semester: semester.Label,
					Code:     row.Code,
					Name:     row.Name,
				}
				if row.Reason != nil {
					invalid.Kind = row.Reason.Kind
					invalid.Reason = row.Reason.Message
					invalid.Cascaded = row.Reason.Cascaded
				}
				result.Invalid = append(result.Invalid, invalid)
			case models.VerdictNotFound:
				result.NotFound = append(result.NotFound, models.NotFoundCourse{
					Code:     row.Code,
					Name:     row.Name,
					Semester: semester.Label,
				})
				semValidRegs = append(semValidRegs, semRegs[j])
			default:
				semValidRegs = append(semValidRegs, semRegs[j])
			}
		}

		allRegs = append(allRegs, semRegs...)
		validRegs = append(validRegs, semValidRegs...)

		semGPA, _ := gradePointAverage(semRegs)
		cumGPA, _ := gradePointAverage(allRegs)
		validSemGPA, _ := gradePointAverage(semValidRegs)
		validCumGPA, _ := gradePointAverage(validRegs)

		result.Semesters = append(result.Semesters, models.SemesterSummary{
			Label:                 semester.Label,
			Type:                  semester.Type,
			Year:                  semester.Year,
			TotalCredits:          semester.TotalCredits(),
			ReportedSemesterGPA:   semester.SemesterGPA,
			ReportedCumulativeGPA: semester.CumulativeGPA,
			SemesterGPA:           semGPA,
			CumulativeGPA:         cumGPA,
			ValidSemesterGPA:      validSemGPA,
			ValidCumulativeGPA:    validCumGPA,
			HasInvalid:            hasInvalid,
			CreditWarning:         warnings[i],
			Courses:               semesterRows,
		})
	}

	return result
}
