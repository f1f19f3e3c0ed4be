package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"maqha/internal/config"
	"maqha/internal/db"
	"maqha/internal/httpserver"
	"maqha/internal/kvstore"
	cartrepo "maqha/internal/repository/cart"
	catalogrepo "maqha/internal/repository/catalog"
	customerrepo "maqha/internal/repository/customer"
	orderrepo "maqha/internal/repository/order"
	staffrepo "maqha/internal/repository/staff"
	tokenrepo "maqha/internal/repository/token"
	"maqha/internal/service/cardpool"
	cartsvc "maqha/internal/service/cart"
	catalogsvc "maqha/internal/service/catalog"
	"maqha/internal/service/fulfillment"
	"maqha/internal/service/history"
	"maqha/internal/service/loyalty"
	"maqha/internal/service/orders"
	"maqha/internal/service/session"
	staffsvc "maqha/internal/service/staff"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	store := kvstore.NewPostgres(dbpool)

	catalogRepo := catalogrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(catalogRepo)

	fulfillmentService := fulfillment.New(store)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, catalogRepo, fulfillmentService)

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	allocator := cardpool.New(store)
	loyaltyService := loyalty.New(customerRepo, allocator)

	historyStore := history.New(store)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orderService := orders.New(orderRepo, cartService, fulfillmentService, loyaltyService, historyStore)

	sessionService := session.New(store)
	staffRepo := staffrepo.NewPostgres(dbpool)
	staffService := staffsvc.New(staffRepo, tokenrepo.NewPostgres(dbpool))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		SessionSvc:     sessionService,
		CatalogSvc:     catalogService,
		CartSvc:        cartService,
		FulfillmentSvc: fulfillmentService,
		LoyaltySvc:     loyaltyService,
		OrderSvc:       orderService,
		HistorySvc:     historyStore,
		StaffSvc:       staffService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
