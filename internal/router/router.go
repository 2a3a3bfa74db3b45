package router

import (
	"time"

	"github.com/marcusroqy/foodsystempdv/internal/config"
	"github.com/marcusroqy/foodsystempdv/internal/handler"
	"github.com/marcusroqy/foodsystempdv/internal/middleware"
	"github.com/marcusroqy/foodsystempdv/internal/repository"
	"github.com/marcusroqy/foodsystempdv/internal/service"
	"github.com/marcusroqy/foodsystempdv/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	ledgerSvc := service.NewLedgerService(ledgerRepo)
	resolver := service.NewRecipeResolver(productRepo)
	packaging := service.NewPackagingEngine(productRepo, cfg.PackagingKeyword)
	inventorySvc := service.NewInventoryService(productRepo, ledgerSvc, ledgerRepo)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo)
	orderSvc := service.NewOrderService(orderRepo, ledgerSvc, resolver, packaging, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productsH := handler.NewProductsHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes. Staff runs the counter (orders, stock dashboard);
	// catalog and manual adjustments are admin-only.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/orders", middleware.RequireRole("staff", "admin"), ordersH.Create)
		v1.GET("/orders", middleware.RequireRole("staff", "admin"), ordersH.List)
		v1.PATCH("/orders/:id/status", middleware.RequireRole("staff", "admin"), ordersH.UpdateStatus)

		v1.GET("/inventory", middleware.RequireRole("staff", "admin"), inventoryH.Status)
		v1.GET("/inventory/ledger", middleware.RequireRole("staff", "admin"), inventoryH.Ledger)
		v1.POST("/inventory/adjust", middleware.RequireRole("admin"), inventoryH.Adjust)

		v1.GET("/products", middleware.RequireRole("staff", "admin"), productsH.List)
		prods := v1.Group("/products", middleware.RequireRole("admin"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		v1.GET("/recipes", middleware.RequireRole("staff", "admin"), productsH.ListRecipeLinks)
		v1.POST("/recipes", middleware.RequireRole("admin"), productsH.CreateRecipeLink)

		v1.GET("/categories", middleware.RequireRole("staff", "admin"), productsH.ListCategories)
		v1.POST("/categories", middleware.RequireRole("admin"), productsH.CreateCategory)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
