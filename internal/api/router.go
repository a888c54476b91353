package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adpilot/agency-portal/internal/api/handler"
	"github.com/adpilot/agency-portal/internal/api/middleware"
	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
	"github.com/adpilot/agency-portal/internal/core/service"
	"github.com/adpilot/agency-portal/internal/infrastructure/config"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

// Dependencies carries everything the router needs. Repositories and stores
// are interfaces so main can wire Mongo/Redis or the in-memory fallbacks;
// Mongo and Redis handles are optional and only feed the readiness probe.
type Dependencies struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Users    ports.UserRepository
	Clients  ports.ClientRepository
	Reports  ports.ReportRepository
	Sessions ports.SessionStore
	Limiter  ports.LoginRateLimiter
	Mongo    *mongo.Database
	Redis    *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Services ---
	authService := service.NewAuthService(deps.Users, deps.Clients, deps.Sessions, deps.Limiter, deps.Logger)
	setupService := service.NewSetupService(deps.Users, deps.Logger)
	clientService := service.NewClientService(deps.Clients, deps.Reports, deps.Logger)
	reportService := service.NewReportService(deps.Reports, deps.Clients, deps.Logger)

	codec := cookie.Codec{
		TTL:    deps.Config.Session.TTL,
		Secure: deps.Config.IsProduction(),
		Domain: deps.Config.Session.CookieDomain,
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, codec)
	setupHandler := handler.NewSetupHandler(setupService)
	userHandler := handler.NewUserHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	reportHandler := handler.NewReportHandler(reportService)
	pageHandler := handler.NewPageHandler()

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.POST("/api/setup/create-admin", setupHandler.CreateAdmin)
	e.GET(middleware.LoginPath, pageHandler.Login)

	// --- Authenticated API routes ---
	sessionGuard := middleware.Session(authService, codec)

	admin := e.Group("/api/admin", sessionGuard, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/users", userHandler.Create)
	admin.GET("/clients", clientHandler.List)
	admin.POST("/clients", clientHandler.Create)
	admin.GET("/clients/:id", clientHandler.Get)
	admin.PUT("/clients/:id", clientHandler.Update)
	admin.POST("/clients/:id/reports", reportHandler.Create)
	admin.GET("/clients/:id/reports", reportHandler.ListForClient)

	client := e.Group("/api/client", sessionGuard, middleware.RBAC(domain.RoleClient))
	client.GET("/reports", reportHandler.ListOwn)

	// --- Pages ---
	// The presence pre-check runs before the store-backed guard so anonymous
	// requests redirect without a session lookup.
	e.GET("/admin/dashboard", pageHandler.AdminDashboard,
		middleware.RequireSessionCookie(), middleware.PageGuard(authService, codec, domain.RoleAdmin))
	e.GET("/client/dashboard", pageHandler.ClientDashboard,
		middleware.RequireSessionCookie(), middleware.PageGuard(authService, codec, domain.RoleClient))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
