package httpserver

import (
	"net/http"

	"maqha/internal/domain"
	"github.com/gin-gonic/gin"
)

func listMenuHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if items == nil {
			items = []domain.CatalogItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
	}
}

func getMenuItemHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
