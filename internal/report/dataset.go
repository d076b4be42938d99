package report

import (
	"strconv"

	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/pkg/export"
)

// Dataset column names shared by the CSV and PDF renderings.
const (
	ColSemester = "Semester"
	ColCode     = "Code"
	ColName     = "Name"
	ColGrade    = "Grade"
	ColCredits  = "Credits"
	ColStatus   = "Status"
	ColIssue    = "Issue"
)

// ToDataset flattens a validation result into one row per registration,
// grouped by semester.
func ToDataset(result models.ValidationResult) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{ColSemester, ColCode, ColName, ColGrade, ColCredits, ColStatus, ColIssue},
		GroupBy: ColSemester,
	}

	for _, sem := range result.Semesters {
		for _, row := range sem.Courses {
			issue := ""
			if row.Reason != nil {
				issue = row.Reason.Message
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				ColSemester: sem.Label,
				ColCode:     row.Code,
				ColName:     row.Name,
				ColGrade:    string(row.Grade),
				ColCredits:  strconv.Itoa(row.Credits),
				ColStatus:   statusLabel(row.Status),
				ColIssue:    issue,
			})
		}
	}
	return dataset
}

// Title returns the document title used for PDF renderings.
func Title(result models.ValidationResult) string {
	return "Course Registration Validation Report - " + result.Student.ID
}
