package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/stockroom/stockroom-backend/internal/config"
	"github.com/stockroom/stockroom-backend/internal/httpx"
	"github.com/stockroom/stockroom-backend/internal/modules/inventory"
	"github.com/stockroom/stockroom-backend/internal/modules/item"
	"github.com/stockroom/stockroom-backend/internal/modules/photo"
	"github.com/stockroom/stockroom-backend/internal/modules/shipment"
	"github.com/stockroom/stockroom-backend/internal/modules/shop"
	"github.com/stockroom/stockroom-backend/internal/modules/warehouse"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("logger", zap.Error(err))
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal("ping database", zap.Error(err))
	}
	logger.Info("database connected")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(httpx.Logger(logger))

	// ── Catalog & locations ─────────────────────────────────
	shopRepo := shop.NewPostgresRepository(db)
	shopService := shop.NewService(shopRepo)
	shop.NewHandler(shopService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)

	warehouseRepo := warehouse.NewPostgresRepository(db)
	warehouseService := warehouse.NewService(warehouseRepo, shopRepo, inventoryRepo)
	warehouse.NewHandler(warehouseService).RegisterRoutes(router)

	itemRepo := item.NewPostgresRepository(db)
	itemService := item.NewService(itemRepo, inventory.NewViewSource(inventoryRepo))
	item.NewHandler(itemService).RegisterRoutes(router)

	// ── Stock ───────────────────────────────────────────────
	inventoryService := inventory.NewService(inventoryRepo, itemRepo, warehouseRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	shipmentRepo := shipment.NewPostgresRepository(db)
	shipmentService := shipment.NewService(shipmentRepo, warehouseRepo, itemRepo, logger)
	shipment.NewHandler(shipmentService).RegisterRoutes(router)

	// ── Photos ──────────────────────────────────────────────
	photoStorage, err := photo.NewFileStorage(cfg.PhotoDir)
	if err != nil {
		logger.Fatal("photo storage", zap.Error(err))
	}
	photoService := photo.NewService(photo.NewPostgresRepository(db), photoStorage,
		map[photo.OwnerType]photo.OwnerChecker{
			photo.OwnerItem:      itemRepo.ItemExists,
			photo.OwnerWarehouse: warehouseRepo.WarehouseExists,
			photo.OwnerShop:      shopRepo.ShopExists,
		}, logger)
	photo.NewHandler(photoService).RegisterRoutes(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
