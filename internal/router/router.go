package router

import (
	"time"

	"github.com/Sergiom84/Lucy3000/internal/config"
	"github.com/Sergiom84/Lucy3000/internal/handler"
	"github.com/Sergiom84/Lucy3000/internal/middleware"
	"github.com/Sergiom84/Lucy3000/internal/repository"
	"github.com/Sergiom84/Lucy3000/internal/service"
	"github.com/Sergiom84/Lucy3000/internal/worker"

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
	clientRepo := repository.NewClientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashRepo := repository.NewCashRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	clientSvc := service.NewClientService(clientRepo, appointmentRepo, saleRepo)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, clientRepo, serviceRepo, notificationRepo)
	catalogSvc := service.NewCatalogService(serviceRepo)
	productSvc := service.NewProductService(productRepo, stockRepo, notificationRepo, rdb)
	cashSvc := service.NewCashService(cashRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, clientRepo, stockRepo, cashRepo, dispatcher, cfg.SaleNumPrefix)
	notificationSvc := service.NewNotificationService(notificationRepo)
	reportSvc := service.NewReportService(reportRepo, productRepo, cashRepo)
	dashboardSvc := service.NewDashboardService(reportRepo, appointmentRepo, saleRepo, notificationRepo, cashSvc, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(db)
	authH := handler.NewAuthHandler(authSvc)
	clientsH := handler.NewClientHandler(clientSvc)
	appointmentsH := handler.NewAppointmentHandler(appointmentSvc)
	servicesH := handler.NewServiceHandler(catalogSvc)
	productsH := handler.NewProductHandler(productSvc)
	salesH := handler.NewSaleHandler(saleSvc)
	cashH := handler.NewCashHandler(cashSvc)
	notificationsH := handler.NewNotificationHandler(notificationSvc)
	reportsH := handler.NewReportHandler(reportSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

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
		api.GET("/auth/me", authH.Me)
		api.POST("/auth/register", middleware.RequireRole("ADMIN"), authH.Register)

		users := api.Group("/users", middleware.RequireRole("ADMIN"))
		{
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
		}

		clients := api.Group("/clients")
		{
			clients.POST("", clientsH.Create)
			clients.GET("", clientsH.List)
			clients.GET("/birthdays", clientsH.Birthdays)
			clients.GET("/:id", clientsH.Get)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Deactivate)
			clients.POST("/:id/history", clientsH.AddHistory)
			clients.GET("/:id/history", clientsH.ListHistory)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentsH.Create)
			appointments.GET("", appointmentsH.List)
			appointments.GET("/calendar", appointmentsH.ByDate)
			appointments.GET("/:id", appointmentsH.Get)
			appointments.PUT("/:id", appointmentsH.Update)
			appointments.DELETE("/:id", appointmentsH.Delete)
		}

		// Catalog — reads for everyone, writes for ADMIN
		api.GET("/services", servicesH.List)
		api.GET("/services/:id", servicesH.Get)
		services := api.Group("/services", middleware.RequireRole("ADMIN"))
		{
			services.POST("", servicesH.Create)
			services.PUT("/:id", servicesH.Update)
			services.DELETE("/:id", servicesH.Deactivate)
		}

		// Inventory — reads and stock movements for everyone, writes for ADMIN
		api.GET("/products", productsH.List)
		api.GET("/products/low-stock", productsH.LowStock)
		api.GET("/products/price-lookup", productsH.PriceLookup)
		api.GET("/products/:id", productsH.Get)
		api.POST("/products/:id/stock", productsH.AddStockMovement)
		api.GET("/products/:id/stock", productsH.ListStockMovements)
		products := api.Group("/products", middleware.RequireRole("ADMIN"))
		{
			products.POST("", productsH.Create)
			products.POST("/import", productsH.Import)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
		}

		sales := api.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.POST("/:id/cancel", middleware.RequireRole("ADMIN"), salesH.Cancel)
		}

		cash := api.Group("/cash")
		{
			cash.POST("/open", cashH.Open)
			cash.GET("/current", cashH.Current)
			cash.GET("", cashH.List)
			cash.GET("/:id", cashH.Get)
			cash.POST("/:id/close", cashH.Close)
			cash.POST("/:id/movements", cashH.AddMovement)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationsH.List)
			notifications.POST("/read-all", notificationsH.MarkAllRead)
			notifications.POST("/:id/read", notificationsH.MarkRead)
			notifications.DELETE("/:id", notificationsH.Delete)
		}

		reports := api.Group("/reports", middleware.RequireRole("ADMIN"))
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/clients", reportsH.Clients)
			reports.GET("/products", reportsH.Products)
			reports.GET("/cash", reportsH.Cash)
		}

		api.GET("/dashboard", dashboardH.Summary)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
