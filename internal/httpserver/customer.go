package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func registerCustomerHandler(svc loyaltyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
			return
		}
		customer, err := svc.Register(c.Request.Context(), req.Name, req.Phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, customer)
	}
}

func getCustomerHandler(svc loyaltyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}

func useFreeDrinkHandler(svc loyaltyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customer, err := svc.UseFreeDrink(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
