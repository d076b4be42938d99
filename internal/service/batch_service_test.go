package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/pkg/storage"
)

const batchTranscript = `{
  "student_info": {"id": "%s", "name": "Batch Student"},
  "semesters": [
    {
      "semester": "First 2020",
      "semester_type": "First",
      "year": "2020",
      "courses": [{"code": "01417167", "name": "Calculus I", "grade": "A", "credits": 3}]
    }
  ]
}`

func TestBatchServiceRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	writeBatchFile := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, name), []byte(content), 0o644))
	}
	writeBatchFile("a.json", fmt.Sprintf(batchTranscript, "6310500001"))
	writeBatchFile("b.json", fmt.Sprintf(batchTranscript, "6310500002"))
	writeBatchFile("broken.json", "{not json")
	writeBatchFile("notes.txt", "ignored")

	local, err := storage.NewLocalStorage(outputDir)
	require.NoError(t, err)
	validator := NewValidationService(&mockEngine{result: models.ValidationResult{SemestersAnalyzed: 1}}, nil, nil, nil, nil)
	svc := NewBatchService(validator, local, 2, nil)

	summary, err := svc.Run(context.Background(), inputDir)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Outcomes, 3)

	for _, id := range []string{"6310500001", "6310500002"} {
		_, err := os.Stat(filepath.Join(outputDir, "validation_report_"+id+".txt"))
		assert.NoError(t, err)
	}
}

func TestBatchServiceRunMissingDir(t *testing.T) {
	validator := NewValidationService(&mockEngine{}, nil, nil, nil, nil)
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := NewBatchService(validator, local, 2, nil)

	_, err = svc.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
