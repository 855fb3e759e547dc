package http

import (
	"log/slog"
	"net/http"

	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouterConfig carries what NewRouter needs besides the Server.
type RouterConfig struct {
	JWTSecret []byte
	Metrics   *metrics.Metrics
	Spec      *openapi3.T
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the order API together with
// /health, /metrics, /openapi.json and the Swagger UI under /swagger/.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(ObserveRequests(cfg.Metrics))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.Debug("request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}
	if cfg.Spec != nil {
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, cfg.Spec)
		})
		if ui, err := swaggerUI(cfg.Spec); err == nil {
			e.GET("/swagger/*", ui)
		} else {
			logger.Warn("Swagger UI disabled", "error", err)
		}
	}

	api := e.Group("", RequireStaff(cfg.JWTSecret))
	servers.RegisterHandlers(api, server)

	return e
}
