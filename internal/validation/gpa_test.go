package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/models"
)

func TestGradePointAverage(t *testing.T) {
	regs := []models.CourseRegistration{
		{Code: "01206221", Grade: models.GradeA, Credits: 3},
		{Code: "01206321", Grade: models.GradeC, Credits: 3},
		{Code: "01417167", Grade: models.GradeBPlus, Credits: 2},
	}

	gpa, credits := gradePointAverage(regs)
	assert.Equal(t, 8, credits)
	// (4*3 + 2*3 + 3.5*2) / 8 = 3.125, rounded to 3.13.
	assert.InDelta(t, 3.13, gpa, 0.001)
}

func TestGradePointAverageSkipsNonContributing(t *testing.T) {
	regs := []models.CourseRegistration{
		{Code: "01206221", Grade: models.GradeA, Credits: 3},
		{Code: "01206322", Grade: models.GradeW, Credits: 3},
		{Code: "01999021", Grade: models.GradeP, Credits: 1},
		{Code: "01206341", Grade: models.GradeN, Credits: 3},
	}

	gpa, credits := gradePointAverage(regs)
	assert.Equal(t, 3, credits)
	assert.InDelta(t, 4.0, gpa, 0.001)
}

func TestGradePointAverageEmpty(t *testing.T) {
	gpa, credits := gradePointAverage(nil)
	assert.Zero(t, gpa)
	assert.Zero(t, credits)

	gpa, credits = gradePointAverage([]models.CourseRegistration{
		{Code: "01206221", Grade: models.GradeW, Credits: 3},
	})
	assert.Zero(t, gpa)
	assert.Zero(t, credits)
}

func TestRecalculatedGPAsExcludeInvalidRegistrations(t *testing.T) {
	engine := NewEngine(stubCatalog{
		"01206221": course("01206221"),
		"01206321": course("01206321"),
		"01206322": course("01206322", "01206321"),
	}, Limits{Regular: 22, Summer: 9})

	// First semester: an A and an F, both valid.
	// Second semester: a B in a course whose prerequisite was failed and
	// never retaken, so it is invalid and must not count toward the
	// valid-only figures.
	first := semester("First 2020", models.SemesterFirst,
		reg("01206221", models.GradeA),
		reg("01206321", models.GradeF),
	)
	second := semester("Second 2020", models.SemesterSecond,
		reg("01206322", models.GradeB),
	)

	result := engine.Validate(transcriptOf(first, second))
	require.Equal(t, 1, result.InvalidCount)

	s1 := result.Semesters[0]
	// Overall: (4*3 + 0*3) / 6 = 2.00; both registrations are valid.
	assert.InDelta(t, 2.00, s1.SemesterGPA, 0.001)
	assert.InDelta(t, 2.00, s1.ValidSemesterGPA, 0.001)

	s2 := result.Semesters[1]
	assert.True(t, s2.HasInvalid)
	// Overall semester GPA counts the invalid B.
	assert.InDelta(t, 3.00, s2.SemesterGPA, 0.001)
	// Cumulative: (12 + 9) / 9 = 2.33 overall, 2.00 valid-only.
	assert.InDelta(t, 2.33, s2.CumulativeGPA, 0.001)
	assert.InDelta(t, 0.0, s2.ValidSemesterGPA, 0.001)
	assert.InDelta(t, 2.00, s2.ValidCumulativeGPA, 0.001)
}
