package dto

import "github.com/modern-research-group/course-validator/internal/models"

// ReportRequest captures POST /reports payload.
type ReportRequest struct {
	Transcript models.Transcript   `json:"transcript" validate:"required"`
	Format     models.ReportFormat `json:"format"`
}

// ReportJobResponse is returned after enqueueing a report.
type ReportJobResponse struct {
	ID     string              `json:"id"`
	Status models.ReportStatus `json:"status"`
}

// ReportStatusResponse exposes job progress metadata.
type ReportStatusResponse struct {
	ID        string              `json:"id"`
	StudentID string              `json:"student_id"`
	Status    models.ReportStatus `json:"status"`
	Format    models.ReportFormat `json:"format"`
	ResultURL *string             `json:"resultUrl,omitempty"`
	Error     *string             `json:"error,omitempty"`
}
