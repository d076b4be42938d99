package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/internal/report"
	"github.com/modern-research-group/course-validator/internal/repository"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
	"github.com/modern-research-group/course-validator/pkg/export"
	"github.com/modern-research-group/course-validator/pkg/jobs"
)

type reportJobStore interface {
	Create(job *models.ReportJob) error
	GetByID(id string) (*models.ReportJob, error)
	Update(id string, params repository.UpdateReportJobParams) error
	DeleteFinishedBefore(cutoff time.Time) []models.ReportJob
}

type jobDispatcher interface {
	TryEnqueue(job jobs.Job) error
}

type reportStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type downloadSigner interface {
	Generate(jobID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error)
}

type reportObserver interface {
	RecordReport(format string, failed bool)
}

// ReportJobService manages asynchronous report generation: enqueueing,
// status reads, signed downloads and retention cleanup.
type ReportJobService struct {
	store     reportJobStore
	queue     jobDispatcher
	validator *ValidationService
	storage   reportStorage
	signer    downloadSigner
	metrics   reportObserver
	logger    *zap.Logger
	cfg       ReportJobConfig
}

// ReportJobConfig governs retention and cleanup cadence.
type ReportJobConfig struct {
	RetentionPeriod time.Duration
	CleanupInterval time.Duration
	DownloadPath    string
}

// ReportDownload aggregates resolved download data.
type ReportDownload struct {
	File      *os.File
	Filename  string
	Format    models.ReportFormat
	ExpiresAt time.Time
}

// NewReportJobService constructs the service.
func NewReportJobService(
	store reportJobStore,
	queue jobDispatcher,
	validator *ValidationService,
	storage reportStorage,
	signer downloadSigner,
	metrics reportObserver,
	logger *zap.Logger,
	cfg ReportJobConfig,
) *ReportJobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RetentionPeriod <= 0 {
		cfg.RetentionPeriod = 7 * 24 * time.Hour
	}
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = "/api/v1/reports/download"
	}
	return &ReportJobService{
		store:     store,
		queue:     queue,
		validator: validator,
		storage:   storage,
		signer:    signer,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// SetQueue installs the dispatcher. The queue's handler is this service's
// Process method, so the two are built in sequence at startup.
func (s *ReportJobService) SetQueue(queue jobDispatcher) {
	s.queue = queue
}

// CreateJob validates the request, persists the job and enqueues it.
func (s *ReportJobService) CreateJob(ctx context.Context, req dto.ReportRequest) (*dto.ReportJobResponse, error) {
	if req.Transcript.Student.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "transcript student id is required")
	}
	if len(req.Transcript.Semesters) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "transcript has no semesters")
	}
	format := req.Format
	if format == "" {
		format = models.ReportFormatText
	}
	if !isValidFormat(format) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}

	transcript := req.Transcript
	job := &models.ReportJob{
		ID:         uuid.NewString(),
		StudentID:  transcript.Student.ID,
		Format:     format,
		Status:     models.ReportStatusQueued,
		Transcript: &transcript,
		CreatedAt:  time.Now().UTC(),
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "report queue not configured")
	}
	if err := s.store.Create(job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal)
	}
	if err := s.queue.TryEnqueue(jobs.Job{ID: job.ID, Type: string(format)}); err != nil {
		status := models.ReportStatusFailed
		msg := "failed to enqueue report job"
		now := time.Now().UTC()
		_ = s.store.Update(job.ID, repository.UpdateReportJobParams{
			Status:       &status,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		})
		if errors.Is(err, jobs.ErrQueueFull) {
			return nil, appErrors.Wrap(err, appErrors.ErrQueueFull)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal)
	}
	return &dto.ReportJobResponse{ID: job.ID, Status: job.Status}, nil
}

// GetStatus exposes job metadata to clients.
func (s *ReportJobService) GetStatus(id string) (*dto.ReportStatusResponse, error) {
	job, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReportStatusResponse{
		ID:        job.ID,
		StudentID: job.StudentID,
		Status:    job.Status,
		Format:    job.Format,
	}
	if job.ResultURL != nil {
		resp.ResultURL = job.ResultURL
	}
	if job.ErrorMessage != nil && *job.ErrorMessage != "" {
		resp.Error = job.ErrorMessage
	}
	return resp, nil
}

// ResolveDownload validates the token and opens the stored report file.
func (s *ReportJobService) ResolveDownload(token string) (*ReportDownload, error) {
	jobID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.ErrInvalidSignature
	}
	job, err := s.store.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.ReportStatusFinished {
		return nil, appErrors.ErrReportNotReady
	}
	if job.ResultPath != relPath {
		return nil, appErrors.ErrInvalidSignature
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal)
	}
	return &ReportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		Format:    job.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// Process renders one queued report. It is installed as the queue handler.
func (s *ReportJobService) Process(ctx context.Context, queued jobs.Job) error {
	job, err := s.store.GetByID(queued.ID)
	if err != nil {
		return err
	}
	processing := models.ReportStatusProcessing
	if err := s.store.Update(job.ID, repository.UpdateReportJobParams{Status: &processing}); err != nil {
		return err
	}

	relPath, err := s.render(ctx, job)
	if err != nil {
		// Rendering is deterministic for a given job, so the failure is
		// terminal; returning nil keeps the queue from retrying it.
		failed := models.ReportStatusFailed
		msg := err.Error()
		now := time.Now().UTC()
		if updateErr := s.store.Update(job.ID, repository.UpdateReportJobParams{
			Status:       &failed,
			ErrorMessage: &msg,
			FinishedAt:   &now,
		}); updateErr != nil {
			s.logger.Sugar().Warnw("failed to mark job failed", "job_id", job.ID, "error", updateErr)
		}
		if s.metrics != nil {
			s.metrics.RecordReport(string(job.Format), true)
		}
		s.logger.Sugar().Warnw("report generation failed", "job_id", job.ID, "error", err)
		return nil
	}

	token, _, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal)
	}
	url := fmt.Sprintf("%s?token=%s", s.cfg.DownloadPath, token)
	finished := models.ReportStatusFinished
	now := time.Now().UTC()
	if err := s.store.Update(job.ID, repository.UpdateReportJobParams{
		Status:     &finished,
		ResultPath: &relPath,
		ResultURL:  &url,
		FinishedAt: &now,
	}); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.RecordReport(string(job.Format), false)
	}
	s.logger.Sugar().Infow("report generated", "job_id", job.ID, "student_id", job.StudentID, "format", job.Format)
	return nil
}

func (s *ReportJobService) render(ctx context.Context, job *models.ReportJob) (string, error) {
	if job.Transcript == nil {
		return "", appErrors.Clone(appErrors.ErrReportFailed, "report job has no transcript payload")
	}
	result, err := s.validator.Validate(ctx, dto.ValidateRequest{Transcript: *job.Transcript})
	if err != nil {
		return "", err
	}

	var data []byte
	var ext string
	switch job.Format {
	case models.ReportFormatText:
		data = []byte(report.RenderText(*result))
		ext = "txt"
	case models.ReportFormatCSV:
		data, err = export.NewCSVExporter().Render(report.ToDataset(*result))
		ext = "csv"
	case models.ReportFormatPDF:
		data, err = export.NewPDFExporter().Render(report.ToDataset(*result), report.Title(*result))
		ext = "pdf"
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrReportFailed)
	}

	relPath := filepath.Join(job.ID, fmt.Sprintf("validation_report_%s.%s", job.StudentID, ext))
	if _, err := s.storage.Save(relPath, data); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrReportFailed)
	}
	return relPath, nil
}

// StartCleanup boots a goroutine that purges expired reports periodically.
func (s *ReportJobService) StartCleanup(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.cleanupExpired()
			}
		}
	}()
}

func (s *ReportJobService) cleanupExpired() {
	cutoff := time.Now().Add(-s.cfg.RetentionPeriod)
	removed := s.store.DeleteFinishedBefore(cutoff)
	for _, job := range removed {
		if job.ResultPath == "" {
			continue
		}
		if err := s.storage.Delete(job.ResultPath); err != nil {
			s.logger.Sugar().Warnw("cleanup delete failed", "job_id", job.ID, "error", err)
		}
	}
	if _, err := s.storage.CleanupOlderThan(s.cfg.RetentionPeriod); err != nil {
		s.logger.Sugar().Warnw("filesystem cleanup failed", "error", err)
	}
}

func isValidFormat(f models.ReportFormat) bool {
	switch f {
	case models.ReportFormatText, models.ReportFormatCSV, models.ReportFormatPDF:
		return true
	default:
		return false
	}
}
