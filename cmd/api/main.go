package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/softencymsc/webbill-api/internal/application/service"
	"github.com/softencymsc/webbill-api/internal/config"
	"github.com/softencymsc/webbill-api/internal/infrastructure/cache"
	"github.com/softencymsc/webbill-api/internal/infrastructure/database"
	"github.com/softencymsc/webbill-api/internal/infrastructure/repository"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/internal/presentation/http/handler"
	"github.com/softencymsc/webbill-api/internal/presentation/http/routes"
	"github.com/softencymsc/webbill-api/pkg/otp"
	"github.com/softencymsc/webbill-api/pkg/retry"
	"github.com/softencymsc/webbill-api/pkg/utils"
	"github.com/softencymsc/webbill-api/pkg/whatsapp"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret)

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	billRepo := repository.NewBillRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Select the settlement writer backend
	var writer domainRepo.SettlementWriter
	switch cfg.Database.Writer {
	case "staged":
		writer = repository.NewStagedWriter(db)
	default:
		writer = repository.NewTransactionalWriter(db)
	}

	// Pending owner authorizations live in Redis when available so replicas
	// share them, otherwise in process memory
	var pendingStore cache.PendingStore
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pendingStore = cache.NewRedisStore(redisClient)
	} else {
		pendingStore = cache.NewMemoryStore()
	}

	// Initialize the outbound WhatsApp channel
	whatsappClient := whatsapp.NewClient(whatsapp.Config{
		BaseURL:  cfg.WhatsApp.BaseURL,
		Token:    cfg.WhatsApp.Token,
		SenderID: cfg.WhatsApp.SenderID,
		Timeout:  cfg.WhatsApp.Timeout,
		Enabled:  cfg.WhatsApp.Enabled,
	})
	otpSender := otp.NewSender(whatsappClient)

	// Initialize services
	notificationService := service.NewNotificationService(whatsappClient, retry.Policy{
		MaxAttempts: cfg.Notify.MaxAttempts,
		Delay:       cfg.Notify.RetryDelay,
		Retryable:   whatsapp.IsTimeout,
	})
	discountService := service.NewDiscountService(
		promoRepo,
		tenantRepo,
		otpSender,
		pendingStore,
		time.Duration(cfg.Discount.OTPExpiryMinutes)*time.Minute,
	)
	settlementService := service.NewSettlementService(
		writer,
		billRepo,
		customerRepo,
		productRepo,
		draftRepo,
		orderRepo,
		tenantRepo,
		notificationService,
	)
	draftService := service.NewDraftService(draftRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Settlement: handler.NewSettlementHandler(settlementService, discountService, notificationService),
		Discount:   handler.NewDiscountHandler(discountService),
		Draft:      handler.NewDraftHandler(draftService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
