package router

import (
	"time"

	"github.com/f3rnandojr/newapp-coffe/internal/config"
	"github.com/f3rnandojr/newapp-coffe/internal/handler"
	"github.com/f3rnandojr/newapp-coffe/internal/middleware"
	"github.com/f3rnandojr/newapp-coffe/internal/repository"
	"github.com/f3rnandojr/newapp-coffe/internal/service"
	"github.com/f3rnandojr/newapp-coffe/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
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

	// Worker dispatcher — injected into services that enqueue async jobs.
	// The consuming pool lives in cmd/server.
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	collaboratorRepo := repository.NewCollaboratorRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	stockSvc := service.NewStockService(productRepo, movementRepo, dispatcher, cfg.DefaultCafeteria)
	collaboratorSvc := service.NewCollaboratorService(collaboratorRepo, saleRepo, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, productRepo, collaboratorRepo, stockSvc, cfg.DefaultCafeteria, cfg.PDFStoragePath)
	reportSvc := service.NewReportService(saleRepo, productRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	collaboratorsH := handler.NewCollaboratorsHandler(collaboratorSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	movementsH := handler.NewMovementsHandler(stockSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		// Roles: atendente, admin — declared per-endpoint
		api.POST("/sales", middleware.RequireRole("atendente", "admin"), salesH.Register)
		api.GET("/sales", middleware.RequireRole("atendente", "admin"), salesH.List)
		api.GET("/sales/:id", middleware.RequireRole("atendente", "admin"), salesH.GetByID)
		api.GET("/sales/:id/receipt", middleware.RequireRole("atendente", "admin"), salesH.Receipt)

		// Products — everyone authenticated can read, admin writes
		api.GET("/products", middleware.RequireRole("atendente", "admin"), productsH.List)
		api.GET("/products/:id", middleware.RequireRole("atendente", "admin"), productsH.GetByID)
		products := api.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		// Stock movements
		api.POST("/movements", middleware.RequireRole("admin"), movementsH.Register)
		api.GET("/movements", middleware.RequireRole("atendente", "admin"), movementsH.List)

		// Collaborators — payroll-debit accounts, admin only
		collaborators := api.Group("/collaborators", middleware.RequireRole("admin"))
		{
			collaborators.POST("", collaboratorsH.Create)
			collaborators.GET("", collaboratorsH.List)
			collaborators.GET("/:id", collaboratorsH.GetByID)
			collaborators.PUT("/:id", collaboratorsH.Update)
			collaborators.DELETE("/:id", collaboratorsH.Delete)
			collaborators.POST("/:id/reset-password", collaboratorsH.ResetPassword)
			collaborators.GET("/:id/history", collaboratorsH.History)
		}

		// Reports
		reports := api.Group("/reports", middleware.RequireRole("admin"))
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/low-stock", reportsH.LowStock)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
