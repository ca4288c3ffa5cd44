package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/storefront/backend/internal/application/cart"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	couponapp "github.com/storefront/backend/internal/application/coupon"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderapp "github.com/storefront/backend/internal/application/order"
	wishlistapp "github.com/storefront/backend/internal/application/wishlist"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Storefront Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize the document store backend
	store, err := kvstore.New(kvstore.FactoryConfig{
		Backend:    cfg.KVStore.Backend,
		Dir:        cfg.KVStore.Dir,
		SQLitePath: cfg.KVStore.SQLitePath,
		Redis: kvstore.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize document store", zap.Error(err))
	}
	log.Info("Document store ready", zap.String("backend", cfg.KVStore.Backend))

	// Initialize repositories
	cartRepo := persistence.NewCartRepository(store)
	wishlistRepo := persistence.NewWishlistRepository(store)
	couponRepo := persistence.NewCouponRepository(store)
	orderRepo := persistence.NewOrderRepository(store)
	userRepo := persistence.NewUserRepository(store)
	sessionRepo := persistence.NewSessionRepository(store)
	stageRepo := persistence.NewCheckoutStageRepository(store)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	cartService := cartapp.NewService(cartRepo, log)
	wishlistService := wishlistapp.NewService(wishlistRepo, log)
	couponService := couponapp.NewService(couponRepo, log)
	orderService := orderapp.NewService(orderRepo, log)
	checkoutService := checkoutapp.NewService(stageRepo, cartRepo, couponRepo, orderRepo, sessionRepo, log)
	identityService := identityapp.NewService(userRepo, sessionRepo, couponService, jwtService, log)

	// Initialize event bus and projections
	eventBus := event.NewInMemoryEventBus(log)

	badgeProjection := event.NewBadgeProjection(store, log)
	eventBus.Subscribe(badgeProjection)
	log.Info("Event handlers registered",
		zap.Strings("badge_projection_events", badgeProjection.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	cartService.SetEventPublisher(eventBus)
	wishlistService.SetEventPublisher(eventBus)
	couponService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)
	identityService.SetEventPublisher(eventBus)

	// Seed the demo admin account when configured
	if cfg.App.SeedDemoAdmin {
		if err := identityService.EnsureUser(context.Background(), "admin", "관리자", "1234"); err != nil {
			log.Warn("Failed to seed demo admin account", zap.Error(err))
		} else {
			log.Info("Demo admin account ready", zap.String("user_id", "admin"))
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(identityService)
	cartHandler := handler.NewCartHandler(cartService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	couponHandler := handler.NewCouponHandler(couponService)
	orderHandler := handler.NewOrderHandler(orderService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	badgeHandler := handler.NewBadgeHandler(store)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report binding errors with JSON field names
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. Session - Validate bearer tokens when present
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Session(jwtService))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(store))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(authHandler).
		Register(cartHandler).
		Register(wishlistHandler).
		Register(couponHandler).
		Register(orderHandler).
		Register(checkoutHandler).
		Register(badgeHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(store kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reading any key exercises the backend; the result is irrelevant
		store.Has(c.Request.Context(), "health-probe")
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
