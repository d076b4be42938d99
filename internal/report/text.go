// Package report renders validation results into their distributable forms.
package report

import (
	"fmt"
	"strings"

	"github.com/modern-research-group/course-validator/internal/models"
)

const lineWidth = 80

// AcademicStatus bands a cumulative GPA into the advisory categories shown
// on the report header.
func AcademicStatus(gpa float64) string {
	switch {
	case gpa < 1.50:
		return "CRITICAL (GPA < 1.50)"
	case gpa < 1.75:
		return "WARNING (GPA < 1.75)"
	case gpa < 2.00:
		return "PROBATION (GPA < 2.00)"
	default:
		return "NORMAL"
	}
}

// Filename returns the canonical report file name for a student.
func Filename(studentID string) string {
	return fmt.Sprintf("validation_report_%s.txt", studentID)
}

// RenderText produces the full plain-text validation report.
func RenderText(result models.ValidationResult) string {
	var b strings.Builder

	writeHeader(&b, result)
	writeStudentInfo(&b, result)
	writeSummary(&b, result)
	writeSemesterDetails(&b, result)
	writeInvalidDetails(&b, result)
	writeNotFound(&b, result)

	return b.String()
}

func writeHeader(b *strings.Builder, result models.ValidationResult) {
	rule(b, "=")
	line(b, "COURSE REGISTRATION VALIDATION REPORT")
	line(b, "Generated: "+result.GeneratedAt.Format("2006-01-02 15:04:05"))
	rule(b, "=")
	line(b, "")
}

func writeStudentInfo(b *strings.Builder, result models.ValidationResult) {
	line(b, "STUDENT INFORMATION")
	rule(b, "-")
	line(b, "Student ID:       "+orUnknown(result.Student.ID))
	line(b, "Name:             "+orUnknown(result.Student.Name))
	line(b, "Field of Study:   "+orUnknown(result.Student.FieldOfStudy))
	line(b, "Date of Admission: "+orUnknown(result.Student.DateAdmission))

	if len(result.Semesters) > 0 {
		last := result.Semesters[len(result.Semesters)-1]
		gpa := last.CumulativeGPA
		if last.ReportedCumulativeGPA != nil {
			gpa = *last.ReportedCumulativeGPA
		}
		line(b, "Current GPA:      "+formatGPA(gpa))
		line(b, "Academic Status:  "+AcademicStatus(gpa))
	}
	line(b, "")
}

func writeSummary(b *strings.Builder, result models.ValidationResult) {
	line(b, "VALIDATION SUMMARY")
	rule(b, "-")
	line(b, fmt.Sprintf("Semesters Analyzed:    %d", result.SemestersAnalyzed))
	line(b, fmt.Sprintf("Registrations Checked: %d", result.RegistrationsChecked))
	line(b, fmt.Sprintf("Invalid Registrations: %d", result.InvalidCount))
	line(b, "")
}

func writeSemesterDetails(b *strings.Builder, result models.ValidationResult) {
	line(b, "SEMESTER DETAILS")
	rule(b, "-")

	for _, sem := range result.Semesters {
		line(b, "")
		line(b, sem.Label)
		line(b, strings.Repeat("-", len(sem.Label)))

		line(b, fmt.Sprintf("Total Credits: %d", registeredCredits(sem)))
		line(b, fmt.Sprintf("Overall - Semester GPA: %s, Cumulative GPA: %s",
			formatGPA(sem.SemesterGPA), formatGPA(sem.CumulativeGPA)))
		if sem.HasInvalid {
			line(b, fmt.Sprintf("Valid only - Semester GPA: %s, Cumulative GPA: %s",
				formatGPA(sem.ValidSemesterGPA), formatGPA(sem.ValidCumulativeGPA)))
		}
		if sem.CreditWarning != nil {
			line(b, sem.CreditWarning.Message)
		}

		line(b, "")
		line(b, "Courses:")
		line(b, fmt.Sprintf("%-10s %-40s %-7s %-8s %-10s", "Code", "Name", "Grade", "Credits", "Status"))
		rule(b, "-")

		for _, row := range sem.Courses {
			line(b, fmt.Sprintf("%-10s %-40s %-7s %-8d %-10s",
				row.Code, truncateName(row.Name), row.Grade, row.Credits, statusLabel(row.Status)))
			if row.Status == models.VerdictInvalid && row.Reason != nil {
				line(b, "  → Issue: "+row.Reason.Message)
			}
		}
	}
}

func writeInvalidDetails(b *strings.Builder, result models.ValidationResult) {
	if len(result.Invalid) == 0 {
		return
	}

	line(b, "")
	line(b, "")
	line(b, "INVALID REGISTRATIONS DETAILS")
	rule(b, "-")

	// Grouped by semester in transcript order.
	var order []string
	grouped := make(map[string][]models.InvalidRegistration)
	for _, inv := range result.Invalid {
		if _, seen := grouped[inv.Semester]; !seen {
			order = append(order, inv.Semester)
		}
		grouped[inv.Semester] = append(grouped[inv.Semester], inv)
	}

	for _, semester := range order {
		line(b, "")
		line(b, "Semester: "+semester)
		for _, inv := range grouped[semester] {
			line(b, fmt.Sprintf("  • Course: %s - %s", inv.Code, orUnknown(inv.Name)))
			line(b, "    Type: "+capitalize(string(inv.Kind)))
			line(b, "    Reason: "+inv.Reason)
		}
	}
}

func writeNotFound(b *strings.Builder, result models.ValidationResult) {
	if len(result.NotFound) == 0 {
		return
	}

	line(b, "")
	line(b, "")
	line(b, "COURSES NOT IN COURSE DATA")
	rule(b, "-")
	line(b, "The following courses were not found in the course data file and could not be validated.")
	line(b, "Please check prerequisites manually for these courses:")
	line(b, "")
	line(b, fmt.Sprintf("%-10s %-40s %-20s", "Code", "Name", "Semester"))
	line(b, strings.Repeat("-", 70))

	for _, nf := range result.NotFound {
		line(b, fmt.Sprintf("%-10s %-40s %-20s", nf.Code, truncateName(nf.Name), nf.Semester))
	}
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

func rule(b *strings.Builder, ch string) {
	line(b, strings.Repeat(ch, lineWidth))
}

// registeredCredits excludes withdrawn courses from the displayed total.
func registeredCredits(sem models.SemesterSummary) int {
	total := 0
	for _, row := range sem.Courses {
		if row.Grade == models.GradeW {
			continue
		}
		total += row.Credits
	}
	return total
}

func statusLabel(status models.VerdictStatus) string {
	switch status {
	case models.VerdictInvalid:
		return "INVALID"
	case models.VerdictNotFound:
		return "NOT FOUND"
	default:
		return "Valid"
	}
}

func truncateName(name string) string {
	if name == "" {
		return "Unknown"
	}
	// Truncate on runes so multi-byte names are never cut mid-character.
	runes := []rune(name)
	if len(runes) > 38 {
		return string(runes[:35]) + "..."
	}
	return name
}

func formatGPA(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
