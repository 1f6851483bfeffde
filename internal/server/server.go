// Package server exposes the catalog client as a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"animeflix/catalog/internal/client"
	"animeflix/catalog/internal/config"
	"animeflix/catalog/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

type Server struct {
	echo *echo.Echo
}

func New(cfg config.ServerConfig, catalog client.CatalogClient, pageSize int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	limiter := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	e.Use(middleware.Recover())
	e.Use(requestMetrics())
	e.Use(requestLogger())

	h := &handler{catalog: catalog, pageSize: pageSize}

	api := e.Group("/api", pace(limiter))
	api.GET("/anime", h.search)
	api.GET("/anime/:id", h.detail)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{echo: e}
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start(addr string) error {
	log.Infof("HTTP server listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// pace holds inbound API requests back to the configured rate before they
// queue on the outbound throttle.
func pace(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter.Take()
			return next(c)
		}
	}
}

func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordHTTP(route, strconv.Itoa(c.Response().Status))
			return nil
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.WithFields(log.Fields{
				"method":   c.Request().Method,
				"uri":      c.Request().RequestURI,
				"status":   c.Response().Status,
				"duration": time.Since(start).Round(time.Millisecond),
			}).Debug("request served")
			return err
		}
	}
}
