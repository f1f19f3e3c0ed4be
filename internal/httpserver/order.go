package httpserver

import (
	"net/http"

	"maqha/internal/domain"
	"maqha/internal/service/orders"
	"github.com/gin-gonic/gin"
)

func placeOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in orders.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
			return
		}
		order, err := svc.Place(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), c.Param("number"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// customerOrdersHandler backs the storefront's order-status feed. The UI
// polls it every few seconds while an order is in flight.
func customerOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListForCustomer(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}
