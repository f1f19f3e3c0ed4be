package httpserver

import (
	"net/http"

	"maqha/internal/domain"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemId required"})
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		cart, err := svc.AddItem(c.Request.Context(), c.Param("sessionId"), req.ItemID, quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func setCartQuantityHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		cart, err := svc.SetQuantity(c.Request.Context(), c.Param("sessionId"), c.Param("itemId"), *req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.RemoveItem(c.Request.Context(), c.Param("sessionId"), c.Param("itemId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getFulfillmentHandler(svc fulfillmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := svc.Get(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

func setFulfillmentHandler(svc fulfillmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Fulfillment
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fulfillment payload"})
			return
		}
		f, err := svc.Set(c.Request.Context(), c.Param("sessionId"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

func clearFulfillmentHandler(svc fulfillmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
