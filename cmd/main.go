package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"medivision/internal/caching"
	"medivision/internal/chat"
	"medivision/internal/handlers"
	"medivision/internal/jobs"
	"medivision/internal/jobs/background"
	"medivision/internal/middleware"
	"medivision/internal/repositories"
	"medivision/internal/services"
	"medivision/pkg/database"
)

const version = "1.0.0"

func main() {
	if os.Getenv("APP_ENV") != "production" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		zlog.Fatal().Msg("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		zlog.Warn().Msg("JWT_SECRET not set, using generated development secret")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioBucket := os.Getenv("MINIO_BUCKET")
	if minioBucket == "" {
		minioBucket = "medivision"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, useSSL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	companyRepo := repositories.NewCompanyRepository(pool)
	chatRepo := repositories.NewChatRepository(pool)

	// Services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	reconSvc := services.NewReconciliationService(pool)
	authSvc := services.NewAuthService(userRepo, jwtSecret, 12*time.Hour)
	dashboardSvc := services.NewDashboardService(pool, cacheSvc)
	hub := chat.NewHub(chatRepo, userRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	userHandlers := handlers.NewUserHandlers(userRepo, storageSvc)
	productHandlers := handlers.NewProductHandlers(productRepo, cacheSvc)
	masterHandlers := handlers.NewMasterHandlers(customerRepo, supplierRepo, companyRepo)
	purchaseHandlers := handlers.NewPurchaseHandlers(reconSvc, cacheSvc)
	salesHandlers := handlers.NewSalesHandlers(reconSvc, cacheSvc)
	chatHandlers := handlers.NewChatHandlers(hub)
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler, err := background.NewJobScheduler(jobs.NewStockAlerts(pool))
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// Websocket endpoint; the browser cannot send an Authorization header here
	e.GET("/ws/:username", chatHandlers.ServeWS)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(middleware.JWTConfig(jwtSecret)))
	protected.Use(middleware.ClaimsToContext())

	protected.GET("/me", authHandlers.Me)

	admin := protected.Group("", middleware.RequireAdmin())
	admin.POST("/auth/register", authHandlers.Register)
	admin.GET("/users", userHandlers.ListUsers)
	admin.DELETE("/users/:username", userHandlers.DeleteUser)

	protected.POST("/users/upload-pic", userHandlers.UploadProfilePic)

	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/search", productHandlers.SearchProducts)
	protected.GET("/products/:name", productHandlers.GetProduct)
	protected.PUT("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)
	protected.GET("/stock/search", productHandlers.StockSearch)
	protected.GET("/sales/products/search", productHandlers.SalesSearch)

	protected.GET("/customers", masterHandlers.ListCustomers)
	protected.POST("/customers", masterHandlers.CreateCustomer)
	protected.GET("/customers/search", masterHandlers.SearchCustomers)
	protected.DELETE("/customers/:code", masterHandlers.DeleteCustomer)

	protected.GET("/suppliers", masterHandlers.ListSuppliers)
	protected.POST("/suppliers", masterHandlers.CreateSupplier)
	protected.GET("/suppliers/search", masterHandlers.SearchSuppliers)
	protected.DELETE("/suppliers/:code", masterHandlers.DeleteSupplier)

	protected.GET("/companies", masterHandlers.ListCompanies)
	protected.POST("/companies", masterHandlers.CreateCompany)
	protected.GET("/companies/search", masterHandlers.SearchCompanies)
	protected.DELETE("/companies/:code", masterHandlers.DeleteCompany)

	protected.GET("/purchases/next-entry-no", purchaseHandlers.NextEntryNo)
	protected.GET("/purchases", purchaseHandlers.ListEntryNos)
	protected.POST("/purchases", purchaseHandlers.CreatePurchase)
	protected.GET("/purchases/:entry_no", purchaseHandlers.GetPurchase)
	protected.PUT("/purchases/:entry_no", purchaseHandlers.UpdatePurchase)
	protected.DELETE("/purchases/:entry_no", purchaseHandlers.DeletePurchase)

	protected.GET("/sales/next-invoice-no", salesHandlers.NextInvoiceNo)
	protected.GET("/sales", salesHandlers.ListSales)
	protected.POST("/sales", salesHandlers.CreateSales)
	protected.GET("/sales/:invoice_no", salesHandlers.GetSales)
	protected.PUT("/sales/:invoice_no", salesHandlers.UpdateSales)
	protected.DELETE("/sales/:invoice_no", salesHandlers.DeleteSales)

	protected.GET("/chat/history/:viewer/:other", chatHandlers.History)
	protected.GET("/chat/online", chatHandlers.Online)

	protected.GET("/dashboard/stats", dashboardHandlers.Stats)
	protected.GET("/dashboard/recent-orders", dashboardHandlers.RecentOrders)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	zlog.Info().Str("version", version).Str("port", port).Msg("medivision server starting")
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", port)))
}
