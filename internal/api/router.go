package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/churchhub/chms-api/internal/api/handler"
	"github.com/churchhub/chms-api/internal/api/middleware"
	"github.com/churchhub/chms-api/internal/core/domain"
	"github.com/churchhub/chms-api/internal/core/ports"
	"github.com/churchhub/chms-api/internal/core/service"
	"github.com/churchhub/chms-api/internal/core/token"
)

// Repositories groups the persistence implementations the router wires into
// the services.
type Repositories struct {
	Principals    ports.PrincipalRepository
	Branches      ports.BranchRepository
	Events        ports.EventRepository
	Attendance    ports.AttendanceRepository
	Financial     ports.FinancialRepository
	Notifications ports.NotificationRepository
}

// Deps carries everything NewRouter needs beyond the repositories.
type Deps struct {
	Repos        Repositories
	Codec        *token.Codec
	LoginLimiter ports.LoginLimiter
	Blobs        ports.BlobStore
	Dispatcher   service.NotificationDispatcher
	HealthChecks map[string]func() error
	Log          zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("chms"))

	authService := service.NewAuthService(deps.Repos.Principals, deps.Codec, deps.LoginLimiter, deps.Log)
	principalService := service.NewPrincipalService(deps.Repos.Principals, deps.Log)
	branchService := service.NewBranchService(deps.Repos.Branches, deps.Log)
	eventService := service.NewEventService(deps.Repos.Events, deps.Repos.Branches, deps.Repos.Principals, deps.Blobs, deps.Log)
	attendanceService := service.NewAttendanceService(deps.Repos.Attendance, deps.Repos.Branches, deps.Repos.Principals, deps.Log)
	financialService := service.NewFinancialService(deps.Repos.Financial, deps.Repos.Branches, deps.Log)
	notificationService := service.NewNotificationService(deps.Repos.Notifications, deps.Repos.Principals, deps.Dispatcher, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(principalService)
	branchHandler := handler.NewBranchHandler(branchService)
	eventHandler := handler.NewEventHandler(eventService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	financialHandler := handler.NewFinancialHandler(financialService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	// Claims are trusted as-is for the token's lifetime on most routes. Routes
	// that mutate the caller's own account re-fetch the record so a deleted or
	// demoted principal cannot keep acting on stale claims.
	authn := middleware.Auth(deps.Codec)
	authnFresh := middleware.Auth(deps.Codec, middleware.WithPrincipalLookup(deps.Repos.Principals))
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.PUT("/password", authHandler.ChangePassword, authnFresh)
	auth.PUT("/me", authHandler.UpdateSelf, authnFresh)

	users := v1.Group("/users", authn, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	branches := v1.Group("/branches", authn)
	branches.GET("", branchHandler.List)
	branches.GET("/:id", branchHandler.Get)
	branches.POST("", branchHandler.Create, adminOnly)
	branches.PUT("/:id", branchHandler.Update, adminOnly)
	branches.DELETE("/:id", branchHandler.Delete, adminOnly)

	events := v1.Group("/events", authn)
	events.GET("", eventHandler.List)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, adminOnly)
	events.PUT("/:id", eventHandler.Update, adminOnly)
	events.DELETE("/:id", eventHandler.Delete, adminOnly)

	attendance := v1.Group("/attendance", authn, adminOnly)
	attendance.POST("", attendanceHandler.Create)
	attendance.GET("", attendanceHandler.List)

	financial := v1.Group("/financial", authn, adminOnly)
	financial.POST("", financialHandler.Create)
	financial.GET("", financialHandler.Report)
	financial.PUT("/:id", financialHandler.Update)
	financial.DELETE("/:id", financialHandler.Delete)

	notifications := v1.Group("/notifications", authn)
	notifications.POST("", notificationHandler.Send)
	notifications.GET("", notificationHandler.List)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	return e
}
