package httpserver

import (
	"net/http"
	"strings"

	"maqha/internal/domain"
	"github.com/gin-gonic/gin"
)

const staffCtxKey = "staffUser"

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func staffLoginHandler(svc staffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		user, token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"accessToken": token,
			"expiresIn":   svc.AccessTTLSeconds(),
			"user":        user,
		})
	}
}

// staffAuthMiddleware guards back-office routes with a bearer token.
func staffAuthMiddleware(svc staffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		user, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(staffCtxKey, user)
		c.Next()
	}
}

func staffListOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := domain.OrderStatus(c.DefaultQuery("status", string(domain.OrderPending)))
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		list, err := svc.ListByStatus(c.Request.Context(), status)
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

func staffUpdateStatusHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("number"), domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func staffCreateUserHandler(svc staffService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		user, err := svc.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// staffLookupCustomerHandler lets a cashier pull a loyalty profile by phone
// before stamping a card.
func staffLookupCustomerHandler(svc loyaltyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter required"})
			return
		}
		customer, err := svc.GetByPhone(c.Request.Context(), phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
