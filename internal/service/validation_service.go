package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/internal/report"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

type transcriptValidator interface {
	Validate(transcript models.Transcript) models.ValidationResult
}

type resultCache interface {
	Key(transcript models.Transcript) (string, error)
	Get(ctx context.Context, key string) (*models.ValidationResult, error)
	Set(ctx context.Context, key string, result models.ValidationResult) error
}

type validationObserver interface {
	ObserveValidation(duration time.Duration, invalidCount, notFoundCount int)
	RecordCacheLookup(hit bool)
}

// ValidationService runs the engine over submitted transcripts, consulting
// the result cache when one is configured.
type ValidationService struct {
	engine   transcriptValidator
	cache    resultCache
	metrics  validationObserver
	validate *validator.Validate
	logger   *zap.Logger
}

// NewValidationService constructs the service. cache and metrics may be nil.
func NewValidationService(engine transcriptValidator, cache resultCache, metrics validationObserver, validate *validator.Validate, logger *zap.Logger) *ValidationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationService{
		engine:   engine,
		cache:    cache,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// Validate checks a transcript against the catalog's registration rules.
func (s *ValidationService) Validate(ctx context.Context, req dto.ValidateRequest) (*models.ValidationResult, error) {
	if err := s.checkRequest(req.Transcript); err != nil {
		return nil, err
	}

	var cacheKey string
	if s.cache != nil {
		key, err := s.cache.Key(req.Transcript)
		if err != nil {
			s.logger.Sugar().Warnw("result cache key failed", "error", err)
		} else {
			cacheKey = key
			cached, err := s.cache.Get(ctx, key)
			if err != nil {
				s.logger.Sugar().Warnw("result cache read failed", "error", err)
			} else if cached != nil {
				if s.metrics != nil {
					s.metrics.RecordCacheLookup(true)
				}
				s.logger.Sugar().Debugw("validation served from cache", "student_id", cached.Student.ID)
				return cached, nil
			}
			if s.metrics != nil {
				s.metrics.RecordCacheLookup(false)
			}
		}
	}

	started := time.Now()
	result := s.engine.Validate(req.Transcript)
	if s.metrics != nil {
		s.metrics.ObserveValidation(time.Since(started), result.InvalidCount, len(result.NotFound))
	}
	s.logger.Sugar().Infow("transcript validated",
		"student_id", result.Student.ID,
		"semesters", result.SemestersAnalyzed,
		"registrations", result.RegistrationsChecked,
		"invalid", result.InvalidCount,
	)

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Sugar().Warnw("result cache write failed", "error", err)
		}
	}
	return &result, nil
}

// ValidateReport validates a transcript and renders the plain-text report.
func (s *ValidationService) ValidateReport(ctx context.Context, req dto.ValidateReportRequest) (*dto.ValidateReportResponse, error) {
	result, err := s.Validate(ctx, dto.ValidateRequest{Transcript: req.Transcript})
	if err != nil {
		return nil, err
	}
	return &dto.ValidateReportResponse{
		StudentID: result.Student.ID,
		Filename:  report.Filename(result.Student.ID),
		Report:    report.RenderText(*result),
	}, nil
}

func (s *ValidationService) checkRequest(transcript models.Transcript) error {
	if transcript.Student.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "transcript student id is required")
	}
	if len(transcript.Semesters) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "transcript has no semesters")
	}
	if err := s.validate.Struct(dto.ValidateRequest{Transcript: transcript}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation)
	}
	return nil
}
