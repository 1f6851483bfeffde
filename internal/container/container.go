package container

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"animeflix/catalog/internal/client"
	"animeflix/catalog/internal/config"
	"animeflix/catalog/internal/proxy"
	"animeflix/catalog/internal/server"
	"animeflix/catalog/internal/throttle"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Throttle *throttle.Throttle
	Client   client.CatalogClient
	Server   *server.Server
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := SetupLogging(cfg.Log); err != nil {
		return nil, err
	}

	proxySupplier, err := proxy.NewProxySupplier(ctx, cfg.Jikan.Proxies, cfg.Jikan.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	th := throttle.New(cfg.Jikan.ThrottleInterval())
	catalog := client.NewJikanClient(cfg.Jikan, th, proxySupplier)

	log.Infof("Catalog client ready for %s (throttle %v, page size %d)",
		cfg.Jikan.BaseURL, th.Delay(), cfg.Jikan.PageSize)

	return &Container{
		Config:   cfg,
		Throttle: th,
		Client:   catalog,
		Server:   server.New(cfg.Server, catalog, cfg.Jikan.PageSize),
	}, nil
}

// Run serves the HTTP API until ctx is cancelled, then shuts down gracefully
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Start(c.Config.Server.Addr())
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return c.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// SetupLogging applies the configured level and format to the global logger
func SetupLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch strings.ToLower(cfg.Format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return nil
}
