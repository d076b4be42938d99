package models

import "time"

// ReportFormat enumerates supported report export formats.
type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ReportStatus captures background job lifecycle states.
type ReportStatus string

const (
	ReportStatusQueued     ReportStatus = "QUEUED"
	ReportStatusProcessing ReportStatus = "PROCESSING"
	ReportStatusFinished   ReportStatus = "FINISHED"
	ReportStatusFailed     ReportStatus = "FAILED"
)

// ReportJob tracks one asynchronous validation-report request.
type ReportJob struct {
	ID           string       `json:"id"`
	StudentID    string       `json:"student_id"`
	Format       ReportFormat `json:"format"`
	Status       ReportStatus `json:"status"`
	Transcript   *Transcript  `json:"-"`
	ResultPath   string       `json:"-"`
	ResultURL    *string      `json:"result_url,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
	ErrorMessage *string      `json:"error_message,omitempty"`
}
