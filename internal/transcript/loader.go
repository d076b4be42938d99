// Package transcript reads student transcripts from their JSON interchange
// format and normalises them for validation.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	appErrors "github.com/modern-research-group/course-validator/pkg/errors"

	"github.com/modern-research-group/course-validator/internal/models"
)

// LoadFile reads a transcript JSON document from disk.
func LoadFile(path string) (models.Transcript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Transcript{}, appErrors.Wrap(err, appErrors.ErrTranscriptUnreadable)
	}
	return Parse(raw)
}

// Parse decodes a transcript document and validates its basic shape. The
// chronological order of semesters is taken as given by the document.
func Parse(raw []byte) (models.Transcript, error) {
	if len(raw) == 0 {
		return models.Transcript{}, appErrors.ErrTranscriptUnreadable
	}

	var tr models.Transcript
	if err := json.Unmarshal(raw, &tr); err != nil {
		return models.Transcript{}, appErrors.Wrap(err, appErrors.ErrTranscriptUnreadable)
	}

	if strings.TrimSpace(tr.Student.ID) == "" {
		return models.Transcript{}, appErrors.Wrap(
			fmt.Errorf("transcript has no student id"), appErrors.ErrTranscriptIncomplete)
	}
	if len(tr.Semesters) == 0 {
		return models.Transcript{}, appErrors.Wrap(
			fmt.Errorf("transcript for %s has no semesters", tr.Student.ID), appErrors.ErrTranscriptIncomplete)
	}

	for i := range tr.Semesters {
		normaliseSemester(&tr.Semesters[i])
	}
	return tr, nil
}

// normaliseSemester fills in the semester type from its label when the
// document omits the explicit field, and trims stray whitespace from course
// codes. Individually bad registrations are left in place for the engine to
// flag rather than dropped here.
func normaliseSemester(sem *models.Semester) {
	if sem.Type == "" {
		sem.Type = typeFromLabel(sem.Label)
	}
	for i := range sem.Registrations {
		sem.Registrations[i].Code = strings.TrimSpace(sem.Registrations[i].Code)
		sem.Registrations[i].Grade = models.Grade(strings.TrimSpace(string(sem.Registrations[i].Grade)))
	}
}

func typeFromLabel(label string) models.SemesterType {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "summer"):
		return models.SemesterSummer
	case strings.Contains(lower, "second"):
		return models.SemesterSecond
	default:
		return models.SemesterFirst
	}
}
