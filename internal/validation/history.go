package validation

import "github.com/modern-research-group/course-validator/internal/models"

// Attempt is one recorded registration of a course, positioned by semester.
type Attempt struct {
	Semester int
	Grade    models.Grade
}

type runningVerdict struct {
	semester int
	status   models.VerdictStatus
}

// History is the engine's running view of a transcript during the
// chronological pass: every attempt seen so far plus the most recent verdict
// per course code. It is local to one validation run and never escapes it.
type History struct {
	attempts map[string][]Attempt
	verdicts map[string]runningVerdict
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{
		attempts: make(map[string][]Attempt),
		verdicts: make(map[string]runningVerdict),
	}
}

// Record appends an attempt and updates the course's latest verdict. The
// engine calls this after each registration is classified, so later
// registrations observe it.
func (h *History) Record(code string, attempt Attempt, status models.VerdictStatus) {
	h.attempts[code] = append(h.attempts[code], attempt)
	h.verdicts[code] = runningVerdict{semester: attempt.Semester, status: status}
}

// SetVerdict replaces the running verdict for code, provided its latest
// verdict belongs to the given semester. The same-semester cascade uses this
// to downgrade a sibling without appending a second attempt.
func (h *History) SetVerdict(code string, semester int, status models.VerdictStatus) {
	if v, ok := h.verdicts[code]; ok && v.semester == semester {
		h.verdicts[code] = runningVerdict{semester: semester, status: status}
	}
}

// AttemptsBefore returns the attempts at code in semesters strictly earlier
// than the given one, in chronological order.
func (h *History) AttemptsBefore(code string, semester int) []Attempt {
	all := h.attempts[code]
	earlier := make([]Attempt, 0, len(all))
	for _, attempt := range all {
		if attempt.Semester < semester {
			earlier = append(earlier, attempt)
		}
	}
	return earlier
}

// PassedBefore reports whether any strictly earlier attempt at code passed.
func (h *History) PassedBefore(code string, semester int) bool {
	for _, attempt := range h.AttemptsBefore(code, semester) {
		if attempt.Grade.IsPassing() {
			return true
		}
	}
	return false
}

// InvalidBefore reports whether the latest verdict for code comes from a
// strictly earlier semester and is Invalid. Same-semester verdicts are
// deliberately excluded: siblings must not observe each other outside the
// concurrent-registration exception.
func (h *History) InvalidBefore(code string, semester int) bool {
	v, ok := h.verdicts[code]
	return ok && v.semester < semester && v.status == models.VerdictInvalid
}

// InvalidInSemester reports whether code already received an Invalid verdict
// in the given semester. Used only on the concurrent-registration path.
func (h *History) InvalidInSemester(code string, semester int) bool {
	v, ok := h.verdicts[code]
	return ok && v.semester == semester && v.status == models.VerdictInvalid
}
