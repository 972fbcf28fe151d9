package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	usecase.OrderStore
	ids []string
	err error

	gotAWB    string
	gotStatus string
}

func (s *stubOrders) UpdateStatusByAWB(ctx context.Context, awb, status string, at time.Time) ([]string, error) {
	s.gotAWB, s.gotStatus = awb, status
	return s.ids, s.err
}

func webhookRequest(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhook/status", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Status(c)
	return w
}

func TestWebhookStatusApplied(t *testing.T) {
	store := &stubOrders{ids: []string{"o1"}}
	h := NewWebhookHandler(usecase.NewApplyCarrierStatus(store, nil, nil))

	w := webhookRequest(t, h, `{"awb":"AWB123","current_status":"Delivered"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AWB123")
	assert.Equal(t, "AWB123", store.gotAWB)
	assert.Equal(t, "Delivered", store.gotStatus)
}

func TestWebhookStatusUnmatchedAWBStillAccepted(t *testing.T) {
	h := NewWebhookHandler(usecase.NewApplyCarrierStatus(&stubOrders{}, nil, nil))

	w := webhookRequest(t, h, `{"awb":"unknown","current_status":"Delivered"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookStatusMalformedPayload(t *testing.T) {
	h := NewWebhookHandler(usecase.NewApplyCarrierStatus(&stubOrders{}, nil, nil))

	for _, body := range []string{``, `{`, `{"current_status":"Delivered"}`} {
		w := webhookRequest(t, h, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body=%q", body)
	}
}

func TestWebhookStatusStoreFailure(t *testing.T) {
	store := &stubOrders{err: errors.New("db down")}
	h := NewWebhookHandler(usecase.NewApplyCarrierStatus(store, nil, nil))

	w := webhookRequest(t, h, `{"awb":"AWB123","current_status":"Delivered"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
