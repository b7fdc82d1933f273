package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nextstopchina/forms-api/internal/models"
	"github.com/nextstopchina/forms-api/internal/service"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
	"github.com/nextstopchina/forms-api/pkg/response"
)

// ApplicationHandler exposes the application form endpoints.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Submit godoc
// @Summary Submit application form
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body service.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forms/application [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request body"))
		return
	}

	app, err := h.applications.Submit(c.Request.Context(), req, captureMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Application submitted successfully! We will review your application and get back to you within 2 weeks.", gin.H{
		"id":          app.ID,
		"fullName":    app.FullName(),
		"email":       app.Email,
		"program":     app.PreferredProgram,
		"degreeLevel": app.DegreeLevel,
	})
}

// List godoc
// @Summary List applications
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param degreeLevel query string false "Filter by degree level"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter models.ApplicationFilter
	filter.Status = c.Query("status")
	filter.DegreeLevel = c.Query("degreeLevel")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	apps, pagination, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, apps, pagination)
}
