package validation

import (
	"fmt"

	"github.com/modern-research-group/course-validator/internal/models"
)

// PrerequisiteResolver decides whether a course's prerequisite requirement is
// satisfied given the history up to and including the current semester.
//
// The primary prerequisites list is treated as one implicit group; explicit
// prerequisite_groups are additional alternatives. Satisfying any single
// group in full satisfies the requirement.
type PrerequisiteResolver struct {
	policy ConcurrentRegistrationPolicy
}

// NewPrerequisiteResolver constructs a resolver backed by the standard
// concurrent-registration policy.
func NewPrerequisiteResolver() *PrerequisiteResolver {
	return &PrerequisiteResolver{}
}

// requirementGroup is one alternative satisfaction path. The primary list
// carries retake semantics; explicit groups carry their own concurrent flag.
type requirementGroup struct {
	courses           []string
	primary           bool
	concurrentAllowed bool
}

type groupFailure struct {
	code     string
	message  string
	cascaded bool
}

// Resolve returns nil when the requirement is satisfied, or a reason
// explaining the failure. currentSemester maps every course code registered
// this semester to its grade; it exists so the concurrent-registration
// policy can see siblings without exposing their verdicts.
func (r *PrerequisiteResolver) Resolve(
	entry models.CourseCatalogEntry,
	semester int,
	hist *History,
	currentSemester map[string]models.Grade,
) *models.VerdictReason {
	groups := buildGroups(entry)
	if len(groups) == 0 {
		return nil
	}

	failures := make([]groupFailure, 0, len(groups))
	for _, group := range groups {
		failure := r.resolveGroup(group, semester, hist, currentSemester)
		if failure == nil {
			return nil
		}
		failures = append(failures, *failure)
	}

	// A single group means the failure is attributable to specific courses;
	// multiple groups mean no alternative path worked.
	if len(failures) == 1 {
		f := failures[0]
		return &models.VerdictReason{
			Kind:     models.ReasonPrerequisite,
			Message:  f.message,
			Courses:  []string{f.code},
			Cascaded: f.cascaded,
		}
	}

	codes := make([]string, 0, len(failures))
	cascaded := false
	for _, f := range failures {
		codes = append(codes, f.code)
		cascaded = cascaded || f.cascaded
	}
	return &models.VerdictReason{
		Kind:     models.ReasonPrerequisiteGroup,
		Message:  "no prerequisite group is satisfied",
		Courses:  codes,
		Cascaded: cascaded,
	}
}

func buildGroups(entry models.CourseCatalogEntry) []requirementGroup {
	groups := make([]requirementGroup, 0, len(entry.PrerequisiteGroups)+1)
	if len(entry.Prerequisites) > 0 {
		groups = append(groups, requirementGroup{courses: entry.Prerequisites, primary: true})
	}
	for _, g := range entry.PrerequisiteGroups {
		if len(g.Courses) == 0 {
			continue
		}
		groups = append(groups, requirementGroup{courses: g.Courses, concurrentAllowed: g.ConcurrentAllowed})
	}
	return groups
}

// resolveGroup returns nil when every course in the group is satisfied,
// otherwise the first failure encountered.
func (r *PrerequisiteResolver) resolveGroup(
	group requirementGroup,
	semester int,
	hist *History,
	currentSemester map[string]models.Grade,
) *groupFailure {
	for _, code := range group.courses {
		if failure := r.resolveCode(code, group, semester, hist, currentSemester); failure != nil {
			return failure
		}
	}
	return nil
}

func (r *PrerequisiteResolver) resolveCode(
	code string,
	group requirementGroup,
	semester int,
	hist *History,
	currentSemester map[string]models.Grade,
) *groupFailure {
	// A prerequisite that was itself classified Invalid in an earlier
	// semester poisons every dependent: this is the cascade.
	if hist.InvalidBefore(code, semester) {
		return &groupFailure{
			code:     code,
			message:  fmt.Sprintf("prerequisite %s is invalid", code),
			cascaded: true,
		}
	}

	if hist.PassedBefore(code, semester) {
		return nil
	}

	concurrentGrade, takingNow := currentSemester[code]
	if takingNow {
		if hist.InvalidInSemester(code, semester) {
			return &groupFailure{
				code:     code,
				message:  fmt.Sprintf("prerequisite %s is invalid in current semester", code),
				cascaded: true,
			}
		}
		var outcome RetakeOutcome
		if group.primary {
			outcome = r.policy.EvaluateRetake(code, hist.AttemptsBefore(code, semester), concurrentGrade)
		} else if group.concurrentAllowed {
			outcome = r.policy.AllowsGroupConcurrent(code, concurrentGrade)
		} else {
			outcome = RetakeOutcome{Message: fmt.Sprintf("prerequisite %s not satisfied (concurrent registration not allowed)", code)}
		}
		if outcome.Allowed {
			return nil
		}
		return &groupFailure{code: code, message: outcome.Message}
	}

	if mostRecentIsWithdrawal(hist.AttemptsBefore(code, semester)) {
		return &groupFailure{
			code:    code,
			message: fmt.Sprintf("prerequisite %s was withdrawn (W) and never passed", code),
		}
	}
	return &groupFailure{
		code:    code,
		message: fmt.Sprintf("prerequisite %s not satisfied", code),
	}
}

func mostRecentIsWithdrawal(attempts []Attempt) bool {
	if len(attempts) == 0 {
		return false
	}
	return attempts[len(attempts)-1].Grade == models.GradeW
}
