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

// NewsletterHandler exposes the newsletter lifecycle endpoints.
type NewsletterHandler struct {
	newsletter *service.NewsletterService
}

// NewNewsletterHandler constructs NewsletterHandler.
func NewNewsletterHandler(newsletter *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body service.SubscribeRequest true "Subscription payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /forms/newsletter [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req service.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request body"))
		return
	}

	result, err := h.newsletter.Subscribe(c.Request.Context(), req, captureMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{"email": result.Subscription.Email, "status": result.Outcome}
	switch result.Outcome {
	case service.OutcomeAlreadySubscribed:
		response.OK(c, "You are already subscribed to our newsletter!", data)
	case service.OutcomeResubscribed:
		response.OK(c, "Welcome back! You have been resubscribed to our newsletter.", data)
	default:
		response.Created(c, "Successfully subscribed to our newsletter! Check your email for confirmation.", data)
	}
}

// Unsubscribe godoc
// @Summary Unsubscribe from the newsletter
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body service.UnsubscribeRequest true "Unsubscribe payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forms/newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req service.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "Invalid request body"))
		return
	}

	result, err := h.newsletter.Unsubscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Outcome == service.OutcomeAlreadyInactive {
		response.OK(c, "You are already unsubscribed from our newsletter", nil)
		return
	}
	response.OK(c, "You have been successfully unsubscribed from our newsletter", nil)
}

// List godoc
// @Summary List newsletter subscriptions
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/subscriptions [get]
func (h *NewsletterHandler) List(c *gin.Context) {
	var filter models.SubscriptionFilter
	filter.Status = c.Query("status")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	subs, pagination, err := h.newsletter.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, subs, pagination)
}
