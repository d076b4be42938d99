package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modern-research-group/course-validator/internal/catalog"
	"github.com/modern-research-group/course-validator/internal/dto"
	"github.com/modern-research-group/course-validator/internal/models"
	"github.com/modern-research-group/course-validator/internal/service"
)

func newCatalogHandler() *CatalogHandler {
	cat := catalog.New([]models.CourseCatalogEntry{
		{Code: "01206221", Name: "Engineering Statistics I", Credits: "3(3-0-6)"},
		{Code: "01206321", Name: "Operations Research I", Credits: "3(3-0-6)", Prerequisites: []string{"01206221"}},
		{Code: "01417167", Name: "Calculus I", Credits: "3(3-0-6)"},
	})
	return NewCatalogHandler(service.NewCatalogService(cat, nil))
}

func TestCatalogHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCatalogHandler()

	c, w := newGinContext(http.MethodGet, "/courses/01206321", nil)
	c.Params = gin.Params{{Key: "code", Value: "01206321"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data dto.CourseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Operations Research I", envelope.Data.Name)
	assert.Equal(t, []string{"01206221"}, envelope.Data.Prerequisites)
}

func TestCatalogHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCatalogHandler()

	c, w := newGinContext(http.MethodGet, "/courses/99999999", nil)
	c.Params = gin.Params{{Key: "code", Value: "99999999"}}
	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newCatalogHandler()

	c, w := newGinContext(http.MethodGet, "/courses?search=01206&page=1&pageSize=10", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data       []dto.CourseResponse `json:"data"`
		Pagination *models.Pagination   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 2, envelope.Pagination.TotalCount)
}
