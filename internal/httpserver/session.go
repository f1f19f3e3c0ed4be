package httpserver

import (
	"net/http"

	"maqha/internal/domain"
	"github.com/gin-gonic/gin"
)

// createSessionHandler mints a session id for a device with no persisted one.
// The id is stable from then on: the client stores it and keys its cart with
// it on every request.
func createSessionHandler(svc sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := svc.Mint()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"sessionId": id})
	}
}

func listHistoryHandler(svc historyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.OrderSummary{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func removeHistoryHandler(svc historyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), c.Param("sessionId"), c.Param("number")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearHistoryHandler(svc historyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
