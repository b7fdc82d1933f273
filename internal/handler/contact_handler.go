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

// ContactHandler exposes the contact form endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Submit godoc
// @Summary Submit contact form
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body service.SubmitInquiryRequest true "Contact form payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forms/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request body"))
		return
	}

	inquiry, err := h.contacts.Submit(c.Request.Context(), req, captureMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact form submitted successfully! We will get back to you within 24 hours.", gin.H{
		"id":       inquiry.ID,
		"fullName": inquiry.FullName(),
		"email":    inquiry.Email,
	})
}

// List godoc
// @Summary List inquiries
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/inquiries [get]
func (h *ContactHandler) List(c *gin.Context) {
	var filter models.InquiryFilter
	filter.Status = c.Query("status")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	inquiries, pagination, err := h.contacts.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, inquiries, pagination)
}
