package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"maqha/internal/domain"
	"maqha/internal/service/orders"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The router depends on narrow interfaces so handler tests can stub each
// service independently.

type sessionService interface {
	Mint() (string, error)
}

type catalogService interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	Get(ctx context.Context, id string) (*domain.CatalogItem, error)
}

type cartService interface {
	Get(ctx context.Context, sessionID string) (*domain.PricedCart, error)
	AddItem(ctx context.Context, sessionID, itemID string, quantity int) (*domain.PricedCart, error)
	SetQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*domain.PricedCart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.PricedCart, error)
	Clear(ctx context.Context, sessionID string) error
}

type fulfillmentService interface {
	Set(ctx context.Context, sessionID string, f domain.Fulfillment) (*domain.Fulfillment, error)
	Get(ctx context.Context, sessionID string) (*domain.Fulfillment, error)
	Clear(ctx context.Context, sessionID string) error
}

type loyaltyService interface {
	Register(ctx context.Context, name, phone string) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	UseFreeDrink(ctx context.Context, customerID string) (*domain.Customer, error)
}

type orderService interface {
	Place(ctx context.Context, in orders.PlaceInput) (*domain.Order, error)
	Get(ctx context.Context, number string) (*domain.Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, number string, next domain.OrderStatus) (*domain.Order, error)
}

type historyService interface {
	List(ctx context.Context, sessionID string) ([]domain.OrderSummary, error)
	Remove(ctx context.Context, sessionID, number string) error
	Clear(ctx context.Context, sessionID string) error
}

type staffService interface {
	Login(ctx context.Context, username, password string) (*domain.StaffUser, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.StaffUser, error)
	CreateUser(ctx context.Context, username, password, role string) (*domain.StaffUser, error)
	AccessTTLSeconds() int
}

// Deps carries the services the router wires into handlers.
type Deps struct {
	SessionSvc     sessionService
	CatalogSvc     catalogService
	CartSvc        cartService
	FulfillmentSvc fulfillmentService
	LoyaltySvc     loyaltyService
	OrderSvc       orderService
	HistorySvc     historyService
	StaffSvc       staffService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CartSvc == nil || deps.CatalogSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("missing required services")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsCfg.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/v1")
	{
		v1.POST("/sessions", createSessionHandler(deps.SessionSvc))
		v1.GET("/sessions/:sessionId/orders", listHistoryHandler(deps.HistorySvc))
		v1.DELETE("/sessions/:sessionId/orders", clearHistoryHandler(deps.HistorySvc))
		v1.DELETE("/sessions/:sessionId/orders/:number", removeHistoryHandler(deps.HistorySvc))

		v1.GET("/menu", listMenuHandler(deps.CatalogSvc))
		v1.GET("/menu/:id", getMenuItemHandler(deps.CatalogSvc))

		v1.GET("/carts/:sessionId", getCartHandler(deps.CartSvc))
		v1.POST("/carts/:sessionId/items", addCartItemHandler(deps.CartSvc))
		v1.PUT("/carts/:sessionId/items/:itemId", setCartQuantityHandler(deps.CartSvc))
		v1.DELETE("/carts/:sessionId/items/:itemId", removeCartItemHandler(deps.CartSvc))
		v1.DELETE("/carts/:sessionId", clearCartHandler(deps.CartSvc))

		v1.GET("/carts/:sessionId/fulfillment", getFulfillmentHandler(deps.FulfillmentSvc))
		v1.PUT("/carts/:sessionId/fulfillment", setFulfillmentHandler(deps.FulfillmentSvc))
		v1.DELETE("/carts/:sessionId/fulfillment", clearFulfillmentHandler(deps.FulfillmentSvc))

		v1.POST("/orders", placeOrderHandler(deps.OrderSvc))
		v1.GET("/orders/:number", getOrderHandler(deps.OrderSvc))

		v1.POST("/customers", registerCustomerHandler(deps.LoyaltySvc))
		v1.GET("/customers/:id", getCustomerHandler(deps.LoyaltySvc))
		v1.GET("/customers/:id/orders", customerOrdersHandler(deps.OrderSvc))
		v1.POST("/customers/:id/free-drink", useFreeDrinkHandler(deps.LoyaltySvc))

		v1.POST("/staff/login", staffLoginHandler(deps.StaffSvc))
		authed := v1.Group("/staff", staffAuthMiddleware(deps.StaffSvc))
		{
			authed.GET("/orders", staffListOrdersHandler(deps.OrderSvc))
			authed.PATCH("/orders/:number/status", staffUpdateStatusHandler(deps.OrderSvc))
			authed.POST("/users", staffCreateUserHandler(deps.StaffSvc))
			authed.GET("/customers", staffLookupCustomerHandler(deps.LoyaltySvc))
		}
	}

	return router, nil
}
