package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/softencymsc/webbill-api/internal/config"
	domainRepo "github.com/softencymsc/webbill-api/internal/domain/repository"
	"github.com/softencymsc/webbill-api/internal/presentation/http/handler"
	"github.com/softencymsc/webbill-api/internal/presentation/http/middleware"
	"github.com/softencymsc/webbill-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Settlement *handler.SettlementHandler
	Discount   *handler.DiscountHandler
	Draft      *handler.DraftHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSettlementRoutes(protected, h, deps)
		registerDraftRoutes(protected, h)
		registerDiscountRoutes(protected, h)
	}

	return router
}

func registerSettlementRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	settlements := rg.Group("/settlements")
	{
		settlements.GET("", h.Settlement.List)
		settlements.GET("/:billNo", h.Settlement.Get)
		settlements.POST("/preview", h.Settlement.Preview)
		settlements.POST("/:billNo/notify", h.Settlement.Notify)

		// Posting replays the cached response for duplicate keys
		posting := settlements.Group("")
		posting.Use(middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		posting.POST("", h.Settlement.Settle)
	}
}

func registerDraftRoutes(rg *gin.RouterGroup, h *Handlers) {
	drafts := rg.Group("/drafts")
	{
		drafts.PUT("", h.Draft.Save)
		drafts.GET("/:phone", h.Draft.Resume)
		drafts.DELETE("/:phone", h.Draft.Clear)
	}
}

func registerDiscountRoutes(rg *gin.RouterGroup, h *Handlers) {
	discounts := rg.Group("/discounts")
	{
		discounts.POST("/owner/request", h.Discount.RequestOwner)
	}
}
