package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/report"
	"github.com/modern-research-group/course-validator/internal/transcript"
)

type batchStorage interface {
	Save(filename string, data []byte) (string, error)
}

// BatchService validates every transcript JSON in a directory and writes one
// report file per student.
type BatchService struct {
	validator *ValidationService
	storage   batchStorage
	logger    *zap.Logger
	workers   int
}

// BatchOutcome describes one processed transcript file.
type BatchOutcome struct {
	File         string
	StudentID    string
	ReportFile   string
	InvalidCount int
	Err          error
}

// BatchSummary aggregates a full batch run.
type BatchSummary struct {
	Processed int
	Failed    int
	Started   time.Time
	Elapsed   time.Duration
	Outcomes  []BatchOutcome
}

// NewBatchService constructs the service.
func NewBatchService(validator *ValidationService, storage batchStorage, workers int, logger *zap.Logger) *BatchService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchService{
		validator: validator,
		storage:   storage,
		logger:    logger,
		workers:   workers,
	}
}

// Run processes every .json file in inputDir. Per-file failures are recorded
// in the summary; only an unreadable directory aborts the run.
func (s *BatchService) Run(ctx context.Context, inputDir string) (*BatchSummary, error) {
	files, err := listTranscriptFiles(inputDir)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	outcomes := make([]BatchOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			outcomes[i] = s.processFile(gctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &BatchSummary{
		Started:  started,
		Elapsed:  time.Since(started),
		Outcomes: outcomes,
	}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}
	s.logger.Sugar().Infow("batch run complete",
		"files", len(files), "processed", summary.Processed, "failed", summary.Failed, "elapsed", summary.Elapsed)
	return summary, nil
}

func (s *BatchService) processFile(ctx context.Context, path string) BatchOutcome {
	outcome := BatchOutcome{File: path}

	tr, err := transcript.LoadFile(path)
	if err != nil {
		s.logger.Sugar().Warnw("skipping unreadable transcript", "file", path, "error", err)
		outcome.Err = err
		return outcome
	}
	outcome.StudentID = tr.Student.ID

	result, err := s.validator.Validate(ctx, dto.ValidateRequest{Transcript: tr})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.InvalidCount = result.InvalidCount

	filename := report.Filename(tr.Student.ID)
	if _, err := s.storage.Save(filename, []byte(report.RenderText(*result))); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.ReportFile = filename
	return outcome
}

func listTranscriptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
