package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/cache"
	"storefront-service/internal/config"
	"storefront-service/internal/database"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "storefront-service/docs"
)

// @title           Storefront Service API
// @version         1.0
// @description     Product catalog, customers and shopping carts.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Storefront Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("🗄️ Database Configuration",
		zap.String("driver", cfg.DBDriver),
		zap.String("path", cfg.DBPath),
		zap.String("host", cfg.DBHost),
	)

	appLogger.Info("📡 Kafka Configuration",
		zap.Bool("enabled", cfg.UseKafka),
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_carts", cfg.KafkaTopicCarts),
		zap.String("acks", cfg.KafkaAcks),
		zap.Int("retries", cfg.KafkaRetries),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	appLogger.Info("🔧 Opening database...")
	db, err := database.Open(startupCtx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	appLogger.Info("✅ Database ready", zap.String("driver", db.Driver()))

	appCache := cache.NewCache(cfg, appLogger)
	publisher := events.NewEventPublisher(cfg, appLogger)

	store := repository.NewGormStore(db.Gorm)
	cacheTTL := cache.TTL(cfg.CacheTTLSeconds)
	cartViews := service.NewCartViews(appCache, appLogger, cacheTTL)
	cartService := service.NewCartService(store, cartViews, publisher, appLogger)
	productService := service.NewProductService(store, appCache, cartViews, appLogger, cacheTTL)
	customerService := service.NewCustomerService(store, appLogger)

	appLogger.Info("🔧 Initializing handlers...")
	cartHandler := handlers.NewCartHandler(appLogger, cartService)
	productHandler := handlers.NewProductHandler(appLogger, productService)
	customerHandler := handlers.NewCustomerHandler(appLogger, customerService)
	healthHandler := handlers.NewHealthHandler(appLogger, db)
	appLogger.Info("✅ Handlers initialized successfully")

	router := gin.New()

	// CORS first so preflight requests never reach the rest of the chain
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))

	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	// Catalog and customer writes are operator actions and need a token when
	// auth is on
	var protect gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.AuthEnabled {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
		authHandler := auth.NewAuthHandler(jwtManager, cfg.AuthUsers, appLogger)
		router.POST("/api/auth/login", authHandler.Login)
		protect = middleware.AuthMiddleware(jwtManager, appLogger)
		appLogger.Info("🔐 Authentication enabled", zap.Int("users", len(cfg.AuthUsers)))
	}

	// Replays are per route and run after auth, so a stored response is only
	// ever served to a request that would have reached the handler
	requestIDStore := middleware.NewCacheRequestIDStore(appCache)
	idempotent := middleware.IdempotencyMiddleware(requestIDStore, appLogger, cache.TTL(cfg.IdempotencyTTLSeconds))

	carts := router.Group("/api/shopping-cart")
	{
		carts.GET("/:customerId/carts", cartHandler.GetCustomerCarts)
		carts.POST("/add-product", idempotent, cartHandler.AddProduct)
		carts.DELETE("/remove-product", idempotent, cartHandler.RemoveProduct)
		carts.DELETE("/:cartId", idempotent, cartHandler.DeleteCart)
	}

	products := router.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/suggested", productHandler.SuggestedProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", protect, idempotent, productHandler.CreateProducts)
		products.PUT("/:id", protect, idempotent, productHandler.UpdateProduct)
		products.DELETE("/:id", protect, idempotent, productHandler.DeleteProduct)
	}

	customers := router.Group("/api/customers")
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.POST("", protect, idempotent, customerHandler.CreateCustomer)
		customers.PUT("/:id", protect, idempotent, customerHandler.UpdateCustomer)
		customers.DELETE("/:id", protect, idempotent, customerHandler.DeleteCustomer)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Starting storefront service",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := publisher.Close(); err != nil {
		appLogger.Warn("Failed to close event publisher", zap.Error(err))
	}
	if err := appCache.Close(); err != nil {
		appLogger.Warn("Failed to close cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
