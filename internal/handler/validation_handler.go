package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/service"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
	"github.com/modern-research-group/course-validator/pkg/response"
)

// ValidationHandler exposes transcript validation endpoints.
type ValidationHandler struct {
	validation *service.ValidationService
}

// NewValidationHandler constructs handler.
func NewValidationHandler(validation *service.ValidationService) *ValidationHandler {
	return &ValidationHandler{validation: validation}
}

// Validate godoc
// @Summary Validate a transcript against registration rules
// @Tags Validation
// @Accept json
// @Produce json
// @Param payload body dto.ValidateRequest true "Transcript payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /validate [post]
func (h *ValidationHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation))
		return
	}
	result, err := h.validation.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Report godoc
// @Summary Validate a transcript and return the plain-text report
// @Tags Validation
// @Accept json
// @Produce json
// @Param payload body dto.ValidateReportRequest true "Transcript payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /validate/report [post]
func (h *ValidationHandler) Report(c *gin.Context) {
	var req dto.ValidateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation))
		return
	}
	resp, err := h.validation.ValidateReport(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
