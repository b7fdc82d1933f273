package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nextstopchina/forms-api/pkg/config"
	appErrors "github.com/nextstopchina/forms-api/pkg/errors"
	"github.com/nextstopchina/forms-api/pkg/response"
)

// EmailHandler exposes the notifier diagnostics endpoint.
type EmailHandler struct {
	env   string
	email config.EmailConfig
}

// NewEmailHandler constructs EmailHandler.
func NewEmailHandler(env string, email config.EmailConfig) *EmailHandler {
	return &EmailHandler{env: env, email: email}
}

// Test godoc
// @Summary Report notifier configuration presence
// @Tags Email
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /email/test [get]
func (h *EmailHandler) Test(c *gin.Context) {
	if h.env != config.EnvDevelopment {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "Test endpoint not available outside development"))
		return
	}

	response.OK(c, "Email service is configured and ready", gin.H{
		"fromEmail":          h.email.FromEmail,
		"adminEmail":         h.email.AdminEmail,
		"postmarkConfigured": h.email.ServerToken != "",
	})
}
