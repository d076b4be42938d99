package repository

import (
	"sync"
	"time"

	"github.com/modern-research-group/course-validator/internal/models"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

// ReportJobStore keeps report jobs in memory. Jobs carry their transcript
// payload inline, so they do not survive a restart; clients simply resubmit.
type ReportJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.ReportJob
}

// NewReportJobStore constructs an empty store.
func NewReportJobStore() *ReportJobStore {
	return &ReportJobStore{jobs: make(map[string]*models.ReportJob)}
}

// Create registers a new job.
func (s *ReportJobStore) Create(job *models.ReportJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return appErrors.Clone(appErrors.ErrInternal, "duplicate report job id")
	}
	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

// GetByID returns a copy of the stored job.
func (s *ReportJobStore) GetByID(id string) (*models.ReportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

// UpdateReportJobParams carries the mutable job fields.
type UpdateReportJobParams struct {
	Status       *models.ReportStatus
	ResultPath   *string
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// Update applies the non-nil params to the stored job.
func (s *ReportJobStore) Update(id string, params UpdateReportJobParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.ResultPath != nil {
		job.ResultPath = *params.ResultPath
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

// DeleteFinishedBefore drops finished and failed jobs older than the cutoff
// and returns the removed jobs so callers can purge their files.
func (s *ReportJobStore) DeleteFinishedBefore(cutoff time.Time) []models.ReportJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []models.ReportJob
	for id, job := range s.jobs {
		if job.FinishedAt == nil || job.FinishedAt.After(cutoff) {
			continue
		}
		if job.Status != models.ReportStatusFinished && job.Status != models.ReportStatusFailed {
			continue
		}
		removed = append(removed, *job)
		delete(s.jobs, id)
	}
	return removed
}
