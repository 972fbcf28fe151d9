package http

import (
	"fmt"
	"net/http"

	"github.com/Tarankalsi/backend-triumphllights/internal/adapter/observ"
	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	apply *usecase.ApplyCarrierStatus
}

func NewWebhookHandler(apply *usecase.ApplyCarrierStatus) *WebhookHandler {
	return &WebhookHandler{apply: apply}
}

// Status ingests a carrier status callback. The carrier does not usefully
// retry on 4xx, so a malformed body is the only thing rejected; an unmatched
// AWB still acknowledges with 200.
func (h *WebhookHandler) Status(c *gin.Context) {
	var ev usecase.StatusEvent
	if err := c.ShouldBindJSON(&ev); err != nil || ev.AWB == "" {
		observ.WebhookEventsApplied.WithLabelValues("malformed").Inc()
		fail(c, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if err := h.apply.Execute(c.Request.Context(), ev); err != nil {
		observ.WebhookEventsApplied.WithLabelValues("error").Inc()
		logging.From(c).Error("webhook processing failed", "awb", ev.AWB, "err", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	observ.WebhookEventsApplied.WithLabelValues("applied").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order with AWB code %s updated successfully.", ev.AWB),
	})
}
