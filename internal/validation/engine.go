// Package validation implements the course-registration validation engine:
// a pure, deterministic function from an immutable transcript and catalog to
// a structured validation result. Semesters are processed strictly in
// chronological order; invalidity cascades to dependents through a running
// map of per-course verdicts rather than an explicit dependency graph.
package validation

import (
	"fmt"
	"time"

	"github.com/modern-research-group/course-validator/internal/models"
)

// CatalogLookup is the read-only course metadata source consulted by the
// engine. Absence of a code is reported as NotFound, never as an error.
type CatalogLookup interface {
	Lookup(code string) (models.CourseCatalogEntry, bool)
}

// Engine validates transcripts against a catalog. It holds no mutable state
// across runs; a single Engine is safe for concurrent use by batch workers
// because the catalog is shared read-only and all per-run state lives in a
// History local to the call.
type Engine struct {
	catalog  CatalogLookup
	resolver *PrerequisiteResolver
	credits  *CreditLimitChecker
}

// NewEngine constructs an Engine with the given credit limits.
func NewEngine(catalog CatalogLookup, limits Limits) *Engine {
	return &Engine{
		catalog:  catalog,
		resolver: NewPrerequisiteResolver(),
		credits:  NewCreditLimitChecker(limits),
	}
}

// Validate performs the single forward pass over the transcript and returns
// the aggregated result. The transcript's semester order is trusted to be
// chronological; the engine never re-sorts it.
func (e *Engine) Validate(transcript models.Transcript) models.ValidationResult {
	hist := NewHistory()
	rows := make([][]models.CourseVerdictRow, 0, len(transcript.Semesters))
	warnings := make([]*models.CreditWarning, 0, len(transcript.Semesters))

	for i, semester := range transcript.Semesters {
		current := make(map[string]models.Grade, len(semester.Registrations))
		for _, reg := range semester.Registrations {
			current[reg.Code] = reg.Grade
		}

		verdicts := make([]models.ValidationVerdict, len(semester.Registrations))
		for j, reg := range semester.Registrations {
			verdict := e.classify(reg, i, hist, current)
			verdicts[j] = verdict
			// NotFound and malformed registrations stay out of the running
			// history: they cannot satisfy nor poison a prerequisite.
			if verdict.Status == models.VerdictNotFound {
				continue
			}
			if verdict.Reason != nil && verdict.Reason.Kind == models.ReasonMalformedData {
				continue
			}
			hist.Record(reg.Code, Attempt{Semester: i, Grade: reg.Grade}, verdict.Status)
		}
		e.propagateWithinSemester(semester.Registrations, verdicts, i, hist, current)

		semesterRows := make([]models.CourseVerdictRow, 0, len(semester.Registrations))
		for j, reg := range semester.Registrations {
			semesterRows = append(semesterRows, models.CourseVerdictRow{
				Code:    reg.Code,
				Name:    reg.Name,
				Grade:   reg.Grade,
				Credits: reg.Credits,
				Status:  verdicts[j].Status,
				Reason:  verdicts[j].Reason,
			})
		}

		rows = append(rows, semesterRows)
		warnings = append(warnings, e.credits.Check(semester))
	}

	return aggregate(transcript, rows, warnings, time.Now().UTC())
}

// propagateWithinSemester re-resolves registrations that came out Valid until
// no verdict changes. The first pass reads sibling verdicts from the running
// map in registration order, so a dependent on the concurrent path can miss a
// sibling's invalidity when it is classified first; iterating to a fixpoint
// makes the outcome independent of registration order within the semester.
// A verdict can only move Valid to Invalid here, so the loop is bounded by
// the number of registrations.
func (e *Engine) propagateWithinSemester(
	regs []models.CourseRegistration,
	verdicts []models.ValidationVerdict,
	semester int,
	hist *History,
	current map[string]models.Grade,
) {
	for changed := true; changed; {
		changed = false
		for j, reg := range regs {
			if verdicts[j].Status != models.VerdictValid {
				continue
			}
			// Withdrawn and not-yet-graded registrations are exempt and can
			// never be invalidated by a sibling.
			if reg.Grade == models.GradeW || reg.Grade == models.GradeN {
				continue
			}
			verdict := e.classify(reg, semester, hist, current)
			if verdict.Status != models.VerdictInvalid {
				continue
			}
			verdicts[j] = verdict
			hist.SetVerdict(reg.Code, semester, models.VerdictInvalid)
			changed = true
		}
	}
}

// classify assigns the verdict for one registration against the history as
// it stands. Within a semester the fixpoint above may downgrade a Valid
// verdict; across semesters verdicts are never revisited.
func (e *Engine) classify(
	reg models.CourseRegistration,
	semester int,
	hist *History,
	current map[string]models.Grade,
) models.ValidationVerdict {
	if reg.Code == "" {
		return invalidVerdict(models.ReasonMalformedData, "registration has no course code", nil)
	}
	if !reg.Grade.IsKnown() {
		return invalidVerdict(models.ReasonMalformedData,
			fmt.Sprintf("unrecognised grade %q for course %s", string(reg.Grade), reg.Code), nil)
	}

	entry, found := e.catalog.Lookup(reg.Code)
	if !found {
		return models.ValidationVerdict{Status: models.VerdictNotFound}
	}

	// Withdrawn and not-yet-graded registrations are themselves exempt from
	// prerequisite checking; they simply never satisfy anyone else's.
	if reg.Grade == models.GradeW || reg.Grade == models.GradeN {
		return models.ValidationVerdict{Status: models.VerdictValid}
	}

	if reason := e.resolver.Resolve(entry, semester, hist, current); reason != nil {
		return models.ValidationVerdict{Status: models.VerdictInvalid, Reason: reason}
	}
	return models.ValidationVerdict{Status: models.VerdictValid}
}

func invalidVerdict(kind models.ReasonKind, message string, courses []string) models.ValidationVerdict {
	return models.ValidationVerdict{
		Status: models.VerdictInvalid,
		Reason: &models.VerdictReason{Kind: kind, Message: message, Courses: courses},
	}
}
