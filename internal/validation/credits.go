package validation

import (
	"fmt"

	"github.com/modern-research-group/course-validator/internal/models"
)

// Limits holds the per-semester credit caps. Exceeding a cap is a warning
// attached to the semester summary, never an invalid verdict.
type Limits struct {
	Regular int
	Summer  int
}

// DefaultLimits returns the university's standard caps.
func DefaultLimits() Limits {
	return Limits{Regular: 22, Summer: 9}
}

// CreditLimitChecker flags semester credit overload.
type CreditLimitChecker struct {
	limits Limits
}

// NewCreditLimitChecker builds a checker, filling unset caps with defaults.
func NewCreditLimitChecker(limits Limits) *CreditLimitChecker {
	defaults := DefaultLimits()
	if limits.Regular <= 0 {
		limits.Regular = defaults.Regular
	}
	if limits.Summer <= 0 {
		limits.Summer = defaults.Summer
	}
	return &CreditLimitChecker{limits: limits}
}

// Check sums the semester's declared credits, including courses missing from
// the catalog, and returns a warning when the applicable cap is exceeded.
func (c *CreditLimitChecker) Check(semester models.Semester) *models.CreditWarning {
	limit := c.limits.Regular
	label := "regular semester"
	if semester.Type == models.SemesterSummer {
		limit = c.limits.Summer
		label = "summer"
	}

	total := semester.TotalCredits()
	if total <= limit {
		return nil
	}
	return &models.CreditWarning{
		Limit:      limit,
		Registered: total,
		Message:    fmt.Sprintf("NOTICE: Exceeds typical %d credits for %s (registered: %d)", limit, label, total),
	}
}
