package router

import (
	"time"

	"barpos/internal/config"
	"barpos/internal/handler"
	"barpos/internal/middleware"
	"barpos/internal/repository"
	"barpos/internal/service"
	"barpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
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
	barRepo := repository.NewBarRepository(db)
	stockRepo := repository.NewStockRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	cartStore := repository.NewCartStore()

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	barSvc := service.NewBarService(barRepo)
	catalogSvc := service.NewCatalogService(productRepo, rdb)
	stockSvc := service.NewStockService(stockRepo, productRepo, barRepo, log.Logger)
	cartSvc := service.NewCartService(cartStore, catalogSvc, stockRepo, cfg, log.Logger)
	ticketSvc := service.NewTicketService(cartStore, ticketRepo, stockRepo, barRepo, dispatcher, cfg, log.Logger)
	salesSvc := service.NewSalesService(ticketRepo, barRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	bartenderH := handler.NewBartenderHandler(cartSvc, ticketSvc)
	ticketsH := handler.NewTicketsHandler(ticketSvc)
	stockH := handler.NewStockHandler(stockSvc)
	salesH := handler.NewSalesHandler(salesSvc)
	productsH := handler.NewProductsHandler(productSvc, barSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Bartender screen — bartender or admin
		bartender := v1.Group("/bartender", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin))
		{
			bartender.POST("/input", bartenderH.Input)
			bartender.GET("/cart", bartenderH.GetCart)
			bartender.DELETE("/cart", bartenderH.ClearCart)
			bartender.DELETE("/cart/item", bartenderH.RemoveItem)
			bartender.POST("/cart/confirm", bartenderH.Confirm)
		}

		// Tickets — read and annotate for both roles; delete is admin only
		v1.GET("/tickets", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), ticketsH.Search)
		v1.GET("/tickets/:id", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), ticketsH.Get)
		v1.PATCH("/tickets/:id", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), ticketsH.Patch)
		v1.PATCH("/tickets/:id/print", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), ticketsH.MarkPrinted)
		v1.DELETE("/tickets/:id", middleware.RequireRole(middleware.RoleAdmin), ticketsH.Delete)

		// Stock ledger — admin only
		stock := v1.Group("/stock", middleware.RequireRole(middleware.RoleAdmin))
		{
			stock.GET("", stockH.Query)
			stock.GET("/movements", stockH.Movements)
			stock.POST("/assign", stockH.Assign)
			stock.POST("/move", stockH.Move)
			stock.POST("/bulk", stockH.Bulk)
		}

		// Sales dashboard — admin only
		v1.GET("/sales/bars/:barId/summary", middleware.RequireRole(middleware.RoleAdmin), salesH.Summary)

		// Catalog — both roles can read, admin writes
		v1.GET("/products", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), productsH.Get)
		prods := v1.Group("/products", middleware.RequireRole(middleware.RoleAdmin))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
		}

		// Bars — both roles can read, admin writes
		v1.GET("/bars", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), productsH.ListBars)
		v1.GET("/bars/:id", middleware.RequireRole(middleware.RoleBartender, middleware.RoleAdmin), productsH.GetBar)
		v1.POST("/bars", middleware.RequireRole(middleware.RoleAdmin), productsH.CreateBar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
