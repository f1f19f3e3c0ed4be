package httpserver

import (
	"errors"
	"net/http"

	"maqha/internal/domain"
	cartsvc "maqha/internal/service/cart"
	"maqha/internal/service/fulfillment"
	"maqha/internal/service/loyalty"
	"maqha/internal/service/orders"
	staffsvc "maqha/internal/service/staff"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP statuses. Every failed mutating
// operation ends up here so the storefront always receives a user-visible
// message; nothing fails silently on the checkout path.
func respondError(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"error": err.Error()})
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, staffsvc.ErrInvalidCredentials), errors.Is(err, staffsvc.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, cartsvc.ErrInvalidQuantity),
		errors.Is(err, cartsvc.ErrItemUnavailable),
		errors.Is(err, fulfillment.ErrTableRequired),
		errors.Is(err, fulfillment.ErrDestinationRequired),
		errors.Is(err, fulfillment.ErrNegativeFee),
		errors.Is(err, fulfillment.ErrUnknownMode),
		errors.Is(err, loyalty.ErrNameRequired),
		errors.Is(err, loyalty.ErrPhoneRequired),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrPaymentRequired),
		errors.Is(err, orders.ErrGuestFreeDrink):
		return http.StatusBadRequest
	case errors.Is(err, loyalty.ErrNoFreeDrinks):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrBadTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
