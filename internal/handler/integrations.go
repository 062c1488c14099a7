package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type IntegrationsHandler interface {
	GetEmailIntegration(c *gin.Context)
}

type integrationsHandler struct{}

func NewIntegrationsHandler() IntegrationsHandler {
	return &integrationsHandler{}
}

// GetEmailIntegration handles GET /api/integrations/email. Mailbox
// integration is not implemented; this returns static forwarding
// instructions so the dashboard can show them.
func (h *integrationsHandler) GetEmailIntegration(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"available":       false,
		"forward_address": "scan@aishieldalert.com",
		"instructions": gin.H{
			"gmail":   "Gmail integration coming soon. In the next version, you'll be able to connect your Gmail account for automatic scanning.",
			"outlook": "Outlook integration coming soon. In the next version, you'll be able to connect your Microsoft account for automatic scanning.",
			"generic": "Email integrations are coming in our next major update. For now, you can forward suspicious emails to scan@aishieldalert.com or use the analyzer.",
		},
	})
}
