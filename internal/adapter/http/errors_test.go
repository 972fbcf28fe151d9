package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"cart token missing", usecase.ErrCartTokenMissing, http.StatusBadRequest},
		{"unsupported payment", usecase.ErrUnsupportedPayment, http.StatusBadRequest},
		{"no serviceable courier", usecase.ErrNoServiceableCourier, http.StatusBadRequest},
		{"no courier within sla", usecase.ErrNoCourierWithinSLA, http.StatusBadRequest},
		{"awb assignment", &usecase.AWBAssignmentError{Reason: "wallet balance low"}, http.StatusBadRequest},
		{"cart token invalid", usecase.ErrCartTokenInvalid, http.StatusUnauthorized},
		{"cart not found", usecase.ErrCartNotFound, http.StatusNotFound},
		{"order not found", usecase.ErrOrderNotFound, http.StatusNotFound},
		{"out of stock", &usecase.OutOfStockError{ProductID: "p1"}, http.StatusConflict},
		{"not cancellable", usecase.ErrOrderNotCancellable, http.StatusConflict},
		{"duplicate", usecase.ErrDuplicate, http.StatusConflict},
		{"carrier failure", &usecase.CarrierServiceError{Op: "serviceability", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/v1/orders", nil)

			respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/orders", nil)

	respondError(c, errors.New("dsn: user:pass@tcp(db)/orders"))
	assert.NotContains(t, w.Body.String(), "dsn")
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}
