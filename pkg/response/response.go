package response

import (
	"github.com/gin-gonic/gin"

	"github.com/modern-research-group/course-validator/internal/models"
	appErrors "github.com/modern-research-group/course-validator/pkg/errors"
)

// Envelope is the wire shape of every API response. Exactly one of Data and
// Error is set; Pagination accompanies list data; Meta carries optional
// extras such as cache information.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success envelope. Validation results are computed per request
// and must not be cached by intermediaries.
func JSON(c *gin.Context, status int, data interface{}, pagination *models.Pagination) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Pagination: pagination})
}

// Error converts err to the application error shape and sends it with the
// status it carries. Unknown errors become a generic 500 without leaking
// their message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
