package http

import (
	"context"
	stdhttp "net/http"

	"asset-service/internal/admission"
	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/config"
	"asset-service/internal/http/handler"
	"asset-service/internal/http/middleware"
	"asset-service/internal/repository/postgres"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	AccountRepo    *postgres.AccountRepository
	EmployeeRepo   *postgres.EmployeeRepository
	DeviceRepo     *postgres.DeviceRepository
	AssignmentRepo *postgres.AssignmentRepository
	ReferenceRepo  *postgres.ReferenceRepository
	JWTService     *auth.JWTService
	AuthMiddleware *auth.Middleware
	Gate           *admission.Gate
	AuditLogger    *audit.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom HTTP error handler
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for the login endpoint
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.AccountRepo, deps.JWTService, deps.AuditLogger)
	accountHandler := handler.NewAccountHandler(deps.AccountRepo, deps.EmployeeRepo, deps.AuditLogger)
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeRepo, deps.AuditLogger)
	deviceHandler := handler.NewDeviceHandler(deps.DeviceRepo, deps.AssignmentRepo, deps.AuditLogger)
	referenceHandler := handler.NewReferenceHandler(deps.ReferenceRepo)

	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.POST("/auth", authHandler.Login, strictRateLimiter.Middleware())

	jwtAPI := api.Group("")
	jwtAPI.Use(deps.AuthMiddleware.RequireJWT())

	gate := deps.Gate

	jwtAPI.POST("/accounts", accountHandler.Create, gate.RequireAdmin())
	jwtAPI.GET("/accounts", accountHandler.List, gate.RequireAdmin())
	jwtAPI.GET("/accounts/:id", accountHandler.Get, gate.RequireAccountOwner())
	jwtAPI.PUT("/accounts/:id", accountHandler.Update, gate.RequireAccountOwner())
	jwtAPI.DELETE("/accounts/:id", accountHandler.Delete, gate.RequireAdmin())

	jwtAPI.GET("/employees", employeeHandler.List, gate.RequireAdmin())
	jwtAPI.GET("/employees/:id", employeeHandler.Get, gate.RequireEmployeeOwner())
	jwtAPI.PUT("/employees/:id", employeeHandler.Update, gate.RequireEmployeeOwner())

	jwtAPI.GET("/devices", deviceHandler.List, gate.RequireAdmin())
	jwtAPI.GET("/devices/mine", deviceHandler.ListMine)
	jwtAPI.GET("/devices/:id", deviceHandler.Get, gate.RequireAdmin())
	jwtAPI.POST("/devices", deviceHandler.Create, gate.RequireAdmin())
	jwtAPI.PUT("/devices/:id", deviceHandler.Update, gate.RequireAdmin())
	jwtAPI.PUT("/devices/mine/:id", deviceHandler.UpdateMine, gate.RequireDeviceOwner())
	jwtAPI.DELETE("/devices/:id", deviceHandler.Delete, gate.RequireAdmin())

	jwtAPI.GET("/roles", referenceHandler.ListRoles)
	jwtAPI.GET("/positions", referenceHandler.ListPositions)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
