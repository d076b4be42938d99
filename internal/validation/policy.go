package validation

import (
	"fmt"

	"github.com/modern-research-group/course-validator/internal/models"
)

// ConcurrentRegistrationPolicy encapsulates the exception that lets a student
// take a course in the same semester as one of its prerequisites.
//
// For the primary prerequisite list the exception only applies to a retake:
// the prerequisite must have been failed (grade F, not W or N) in an earlier
// semester and must be registered again this semester with a grade other
// than W. Prerequisite groups flagged concurrent_allowed grant the exception
// without a prior failure, but a withdrawn concurrent attempt still revokes it.
type ConcurrentRegistrationPolicy struct{}

// RetakeOutcome describes a concurrent-retake decision for the primary list.
type RetakeOutcome struct {
	Allowed bool
	Message string
}

// EvaluateRetake decides whether registering prerequisite code concurrently
// satisfies the primary requirement. attempts holds the strictly earlier
// attempts at the prerequisite; concurrentGrade is the grade of this
// semester's registration of the prerequisite.
func (ConcurrentRegistrationPolicy) EvaluateRetake(code string, attempts []Attempt, concurrentGrade models.Grade) RetakeOutcome {
	if concurrentGrade == models.GradeW {
		return RetakeOutcome{Message: fmt.Sprintf("prerequisite %s was withdrawn (W) in this semester", code)}
	}

	failedBefore := false
	withdrawnBefore := false
	for _, attempt := range attempts {
		switch {
		case attempt.Grade.IsFailing():
			failedBefore = true
		case attempt.Grade == models.GradeW:
			withdrawnBefore = true
		}
	}

	if failedBefore {
		return RetakeOutcome{Allowed: true}
	}
	if withdrawnBefore {
		return RetakeOutcome{Message: fmt.Sprintf("prerequisite %s withdrawn before - not eligible for concurrent registration", code)}
	}
	return RetakeOutcome{Message: fmt.Sprintf("prerequisite %s not satisfied for concurrent registration", code)}
}

// AllowsGroupConcurrent decides whether a concurrent registration satisfies a
// group with concurrent_allowed set. No prior failed attempt is required.
func (ConcurrentRegistrationPolicy) AllowsGroupConcurrent(code string, concurrentGrade models.Grade) RetakeOutcome {
	if concurrentGrade == models.GradeW {
		return RetakeOutcome{Message: fmt.Sprintf("prerequisite %s was withdrawn (W) in this semester", code)}
	}
	return RetakeOutcome{Allowed: true}
}
