package dto

import "github.com/modern-research-group/course-validator/internal/models"

// ValidateRequest captures POST /validate payload.
type ValidateRequest struct {
	Transcript models.Transcript `json:"transcript" validate:"required"`
}

// ValidateReportRequest captures POST /validate/report payload.
type ValidateReportRequest struct {
	Transcript models.Transcript `json:"transcript" validate:"required"`
}

// ValidateReportResponse returns the rendered plain-text report inline.
type ValidateReportResponse struct {
	StudentID string `json:"student_id"`
	Filename  string `json:"filename"`
	Report    string `json:"report"`
}
