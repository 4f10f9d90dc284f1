package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/loccar/loccar-web/docs"
	"github.com/loccar/loccar-web/internal/api/handler"
	"github.com/loccar/loccar-web/internal/api/middleware"
	"github.com/loccar/loccar-web/internal/core/guard"
	"github.com/loccar/loccar-web/internal/core/ports"
	"github.com/loccar/loccar-web/internal/core/session"
	"github.com/loccar/loccar-web/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log          zerolog.Logger
	Registry     *session.Registry
	Auth         ports.AuthService
	Catalog      handler.CatalogService
	Readiness    *handlers.ReadinessHandler
	CookieSecure bool
	// Metrics receives the HTTP middleware metrics. Nil uses the default
	// registry; /metrics always exposes the default registry too.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(httpMetrics(d.Metrics))

	// --- Ops (no session) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}
	e.GET("/metrics", metricsHandler(d.Metrics))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Browser routes: every one resolves the client session ---
	client := middleware.Client(d.Registry, middleware.ClientOptions{Secure: d.CookieSecure})
	guarded := middleware.Guard(d.Log)

	pages := handler.NewPageHandler()
	e.GET(guard.RootPath, pages.Root, client)
	e.GET(guard.LoginPath, pages.Login, client)
	e.GET(guard.RegisterPath, pages.Register, client)

	auth := handler.NewAuthHandler(d.Auth, d.Log)
	e.POST("/auth/login", auth.Login, client)
	e.POST("/auth/register", auth.Register, client)
	e.POST("/auth/logout", auth.Logout, client)
	e.GET("/auth/session", auth.Session, client)
	e.POST("/auth/session/refresh", auth.RefreshSession, client)
	e.GET("/auth/session/stream", auth.SessionStream, client)

	// --- Guarded pages ---
	catalog := handler.NewCatalogHandler(d.Catalog)

	e.GET(guard.DashboardPath, catalog.Dashboard, client, guarded)

	e.GET(guard.UsersPath, catalog.Users, client, guarded)
	e.GET(guard.UsersPath+"/:id", catalog.Customer, client, guarded)
	e.PUT(guard.UsersPath+"/:id", catalog.UpdateCustomer, client, guarded)
	e.DELETE(guard.UsersPath+"/:id", catalog.DeleteCustomer, client, guarded)

	e.GET(guard.VehiclesPath, catalog.Vehicles, client, guarded)
	e.GET(guard.VehiclesPath+"/:id", catalog.Vehicle, client, guarded)
	e.PUT(guard.VehiclesPath+"/:id", catalog.UpdateVehicle, client, guarded)
	e.PUT(guard.VehiclesPath+"/:id/reserva", catalog.SetVehicleReserved, client, guarded)
	e.DELETE(guard.VehiclesPath+"/:id", catalog.DeleteVehicle, client, guarded)

	e.GET(guard.CatalogPath, catalog.Catalog, client, guarded)
	e.POST(guard.CatalogPath+"/reservas", catalog.Book, client, guarded)

	e.GET(guard.ReservationsPath, catalog.Reservations, client, guarded)
	e.GET(guard.ReservationsPath+"/:number", catalog.Reservation, client, guarded)
	e.DELETE(guard.ReservationsPath+"/:number", catalog.CancelReservation, client, guarded)

	return e
}

func httpMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "loccar_web",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	})
}
