package validation

import (
	"math"

	"github.com/modern-research-group/course-validator/internal/models"
)

// gradePointAverage computes a weighted 4.0-scale GPA over the registrations
// whose grades contribute (W, P and N are skipped). Returns the GPA rounded
// to two decimals and the credits counted.
func gradePointAverage(regs []models.CourseRegistration) (float64, int) {
	totalPoints := 0.0
	totalCredits := 0
	for _, reg := range regs {
		points, contributes := reg.Grade.GradePoints()
		if !contributes {
			continue
		}
		totalPoints += points * float64(reg.Credits)
		totalCredits += reg.Credits
	}
	if totalCredits == 0 {
		return 0, 0
	}
	return round2(totalPoints / float64(totalCredits)), totalCredits
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
