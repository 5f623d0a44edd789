package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ShardulMane20/Quick-Desk/docs"
	"github.com/ShardulMane20/Quick-Desk/internal/api/handler"
	"github.com/ShardulMane20/Quick-Desk/internal/api/middleware"
	"github.com/ShardulMane20/Quick-Desk/internal/core/domain"
	"github.com/ShardulMane20/Quick-Desk/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth      ports.AuthService
	Sessions  ports.SessionResolver
	Tokens    ports.TokenStore
	Tickets   ports.TicketService
	Admin     ports.AdminService
	Dashboard ports.DashboardService
	Live      ports.LiveService
	// Readiness lists the dependencies probed by /health/ready.
	Readiness map[string]handler.Pinger
}

// Options tune the transport.
type Options struct {
	JWTSecret          string
	CORSOrigin         string
	RateLimitPerMinute int
	Logger             zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil uses the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: strings.Split(opts.CORSOrigin, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "quickdesk",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
		},
	}))

	// --- Ops endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(svc.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	limit := opts.RateLimitPerMinute
	if limit <= 0 {
		limit = 200
	}
	rateLimit := echo.WrapMiddleware(httprate.LimitByIP(limit, time.Minute))
	authn := middleware.Auth(opts.JWTSecret, svc.Tokens)
	session := middleware.Session(svc.Sessions)
	staff := middleware.RBAC(domain.RoleSupportAgent, domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	auth := e.Group("/auth", rateLimit)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authn)

	// --- Authenticated API ---
	v1 := e.Group("/v1", rateLimit, authn, session)
	v1.GET("/me", authHandler.Me)

	ticketHandler := handler.NewTicketHandler(svc.Tickets)
	eventHandler := handler.NewEventHandler(svc.Tickets)
	liveHandler := handler.NewLiveHandler(svc.Live, opts.CORSOrigin, opts.Logger)

	tickets := v1.Group("/tickets")
	tickets.GET("", ticketHandler.List)
	tickets.POST("", ticketHandler.Create)
	tickets.GET("/mine", ticketHandler.ListMine)
	tickets.GET("/live", liveHandler.Stream)
	tickets.GET("/:id", ticketHandler.Get)
	tickets.PATCH("/:id/status", ticketHandler.ChangeStatus, staff)
	tickets.PATCH("/:id/assignee", ticketHandler.Assign, staff)
	tickets.POST("/:id/replies", ticketHandler.Reply)
	tickets.GET("/:id/messages", ticketHandler.ListMessages)
	tickets.POST("/:id/messages", ticketHandler.AddMessage)
	tickets.GET("/:id/events", eventHandler.History)

	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)
	v1.GET("/dashboard", dashboardHandler.Summary)

	adminHandler := handler.NewAdminHandler(svc.Admin)
	v1.GET("/categories", adminHandler.ListCategories)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/role", adminHandler.ChangeRole)
	admin.POST("/categories", adminHandler.AddCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
