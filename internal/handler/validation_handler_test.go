package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/internal/service"
	"github.com/modern-research-group/course-validator/internal/validation"
	"github.com/modern-research-group/course-validator/pkg/response"
)

type fixedCatalog map[string]models.CourseCatalogEntry

func (f fixedCatalog) Lookup(code string) (models.CourseCatalogEntry, bool) {
	entry, ok := f[code]
	return entry, ok
}

func newValidationHandler() *ValidationHandler {
	catalog := fixedCatalog{
		"01206221": {Code: "01206221", Name: "Engineering Statistics I", Credits: "3(3-0-6)"},
		"01206321": {Code: "01206321", Name: "Operations Research I", Credits: "3(3-0-6)", Prerequisites: []string{"01206221"}},
	}
	engine := validation.NewEngine(catalog, validation.DefaultLimits())
	svc := service.NewValidationService(engine, nil, nil, nil, nil)
	return NewValidationHandler(svc)
}

func validateBody(studentID string) []byte {
	body, _ := json.Marshal(dto.ValidateRequest{Transcript: models.Transcript{
		Student: models.StudentInfo{ID: studentID, Name: "Test Student"},
		Semesters: []models.Semester{
			{
				Label: "First 2020", Type: models.SemesterFirst, Year: "2020",
				Registrations: []models.CourseRegistration{
					{Code: "01206321", Name: "Operations Research I", Grade: models.GradeB, Credits: 3},
				},
			},
		},
	}})
	return body
}

func TestValidationHandlerValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newValidationHandler()

	c, w := newGinContext(http.MethodPost, "/validate", validateBody("6310500000"))
	handler.Validate(c)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "6310500000", envelope.Data.Student.ID)
	// The only registration is missing its prerequisite.
	assert.Equal(t, 1, envelope.Data.InvalidCount)
}

func TestValidationHandlerValidateBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newValidationHandler()

	c, w := newGinContext(http.MethodPost, "/validate", []byte("{not json"))
	handler.Validate(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}

func TestValidationHandlerReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newValidationHandler()

	c, w := newGinContext(http.MethodPost, "/validate/report", validateBody("6310500000"))
	handler.Report(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "COURSE REGISTRATION VALIDATION REPORT")
	assert.Contains(t, w.Body.String(), "validation_report_6310500000.txt")
}
