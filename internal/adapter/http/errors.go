package http

import (
	"errors"
	"net/http"

	"github.com/Tarankalsi/backend-triumphllights/internal/logging"
	"github.com/Tarankalsi/backend-triumphllights/internal/usecase"
	"github.com/gin-gonic/gin"
)

// respondError maps the use case error taxonomy onto HTTP statuses.
// Carrier detail is passed through; unexpected errors stay generic.
func respondError(c *gin.Context, err error) {
	var (
		oos *usecase.OutOfStockError
		awb *usecase.AWBAssignmentError
		cse *usecase.CarrierServiceError
	)

	switch {
	case errors.Is(err, usecase.ErrCartTokenMissing),
		errors.Is(err, usecase.ErrUnsupportedPayment),
		errors.Is(err, usecase.ErrInvalidProductData),
		errors.Is(err, usecase.ErrPickupLocationNotFound),
		errors.Is(err, usecase.ErrNoServiceableCourier),
		errors.Is(err, usecase.ErrNoCourierWithinSLA),
		errors.Is(err, usecase.ErrNoCarrierOrder):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &awb):
		fail(c, http.StatusBadRequest, awb.Error())
	case errors.Is(err, usecase.ErrCartTokenInvalid):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, usecase.ErrCartNotFound),
		errors.Is(err, usecase.ErrAddressNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrOrderNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.As(err, &oos):
		fail(c, http.StatusConflict, oos.Error())
	case errors.Is(err, usecase.ErrOrderNotCancellable),
		errors.Is(err, usecase.ErrDuplicate):
		fail(c, http.StatusConflict, err.Error())
	case errors.As(err, &cse):
		fail(c, http.StatusBadGateway, cse.Error())
	default:
		logging.From(c).Error("internal error", "err", err)
		fail(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
