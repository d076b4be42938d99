package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/models"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

const sampleTranscript = `{
  "student_info": {
    "id": "6310500000",
    "name": "Somchai Jaidee",
    "field_of_study": "Industrial Engineering",
    "date_admission": "2020-07-01"
  },
  "semesters": [
    {
      "semester": "First 2020",
      "semester_type": "First",
      "year": "2020",
      "sem_gpa": 3.25,
      "cum_gpa": 3.25,
      "courses": [
        {"code": " 01206221 ", "name": "Engineering Statistics I", "grade": "B+", "credits": 3},
        {"code": "01417167", "name": "Calculus I", "grade": "A ", "credits": 3}
      ]
    },
    {
      "semester": "Summer 2021",
      "year": "2021",
      "courses": [
        {"code": "01355113", "name": "English III", "grade": "C+", "credits": 3}
      ]
    }
  ]
}`

func TestParseSampleTranscript(t *testing.T) {
	tr, err := Parse([]byte(sampleTranscript))
	require.NoError(t, err)

	assert.Equal(t, "6310500000", tr.Student.ID)
	assert.Equal(t, "Somchai Jaidee", tr.Student.Name)
	require.Len(t, tr.Semesters, 2)

	first := tr.Semesters[0]
	assert.Equal(t, models.SemesterFirst, first.Type)
	require.NotNil(t, first.SemesterGPA)
	assert.InDelta(t, 3.25, *first.SemesterGPA, 0.001)
	require.Len(t, first.Registrations, 2)
	// Codes and grades are trimmed on the way in.
	assert.Equal(t, "01206221", first.Registrations[0].Code)
	assert.Equal(t, models.GradeA, first.Registrations[1].Grade)

	// Missing semester_type is inferred from the label.
	assert.Equal(t, models.SemesterSummer, tr.Semesters[1].Type)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want *appErrors.Error
	}{
		{"empty", "", appErrors.ErrTranscriptUnreadable},
		{"not json", "not json at all", appErrors.ErrTranscriptUnreadable},
		{"no student id", `{"student_info":{"name":"X"},"semesters":[{"semester":"First 2020","courses":[]}]}`, appErrors.ErrTranscriptIncomplete},
		{"no semesters", `{"student_info":{"id":"6310500000"},"semesters":[]}`, appErrors.ErrTranscriptIncomplete},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "expected %s, got %v", tc.want.Code, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleTranscript), 0o644))

	tr, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "6310500000", tr.Student.ID)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrTranscriptUnreadable))
}
