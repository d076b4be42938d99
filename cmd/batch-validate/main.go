package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/modern-research-group/course-validator/internal/catalog"
	"github.com/modern-research-group/course-validator/internal/service"
	"github.com/modern-research-group/course-validator/internal/validation"
	"github.com/modern-research-group/course-validator/pkg/config"
	"github.com/modern-research-group/course-validator/pkg/logger"
	"github.com/modern-research-group/course-validator/pkg/storage"
)

func main() {
	var (
		courseData string
		inputDir   string
		outputDir  string
		workers    int
	)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	flag.StringVar(&courseData, "course-data", cfg.Catalog.File, "Path to course data JSON")
	flag.StringVar(&inputDir, "input", cfg.Batch.InputDir, "Directory of transcript JSON files")
	flag.StringVar(&outputDir, "output", cfg.Batch.OutputDir, "Directory for generated reports")
	flag.IntVar(&workers, "workers", cfg.Batch.Concurrency, "Concurrent transcript workers")
	flag.Parse()

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	cat, err := catalog.LoadFile(courseData)
	if err != nil {
		logr.Sugar().Fatalw("catalog load failed", "file", courseData, "error", err)
	}

	local, err := storage.NewLocalStorage(outputDir)
	if err != nil {
		logr.Sugar().Fatalw("output directory init failed", "dir", outputDir, "error", err)
	}

	engine := validation.NewEngine(cat, validation.Limits{
		Regular: cfg.Validation.RegularCreditLimit,
		Summer:  cfg.Validation.SummerCreditLimit,
	})
	validationSvc := service.NewValidationService(engine, nil, nil, nil, logr)
	batch := service.NewBatchService(validationSvc, local, workers, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := batch.Run(ctx, inputDir)
	if err != nil {
		logr.Sugar().Fatalw("batch run failed", "input", inputDir, "error", err)
	}

	fmt.Printf("Processed %d transcripts (%d failed) in %s\n", summary.Processed, summary.Failed, summary.Elapsed.Round(time.Millisecond))
	for _, outcome := range summary.Outcomes {
		name := filepath.Base(outcome.File)
		if outcome.Err != nil {
			fmt.Printf("  FAIL  %-30s %v\n", name, outcome.Err)
			continue
		}
		fmt.Printf("  OK    %-30s student=%s invalid=%d report=%s\n",
			name, outcome.StudentID, outcome.InvalidCount, outcome.ReportFile)
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
