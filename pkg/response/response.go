package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
)

// Envelope is the uniform JSON contract of every endpoint: success flag and
// human message always present, data on success, errors on failure.
type Envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       interface{}            `json:"data,omitempty"`
	Errors     []appErrors.FieldError `json:"errors,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
}

// Pagination describes the slice of a listing returned to the caller.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// verbose controls whether internal error detail is included in responses.
// Enabled only in development deployments, set once during startup.
var verbose bool

// SetVerbose toggles inclusion of internal error detail strings.
func SetVerbose(v bool) {
	verbose = v
}

// JSON sends a success envelope with the given status.
func JSON(c *gin.Context, status int, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// List sends a success envelope with pagination metadata.
func List(c *gin.Context, data interface{}, pagination *Pagination) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{Success: true, Message: "ok", Data: data, Pagination: pagination})
}

// Error sends a failure envelope derived from the error's type. Internal
// detail is only attached when verbose mode is on.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	}
	if verbose && appErr.Err != nil {
		envelope.Error = appErr.Err.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, envelope)
}
