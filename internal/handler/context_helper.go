package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nextstopchina/forms-api/internal/service"
)

const unknownClient = "unknown"

// captureMeta derives the submitter's origin address and client-agent string.
// A forwarded-for header wins over the transport peer address; both fall back
// to "unknown" rather than an empty string.
func captureMeta(c *gin.Context) service.CaptureMeta {
	ip := strings.TrimSpace(c.GetHeader("X-Forwarded-For"))
	if idx := strings.Index(ip, ","); idx >= 0 {
		ip = strings.TrimSpace(ip[:idx])
	}
	if ip == "" {
		ip = c.ClientIP()
	}
	if ip == "" {
		ip = unknownClient
	}

	ua := strings.TrimSpace(c.GetHeader("User-Agent"))
	if ua == "" {
		ua = unknownClient
	}

	return service.CaptureMeta{IPAddress: ip, UserAgent: ua}
}
