package server

import (
	"fmt"

	"github.com/drewfoos/rift-stats/internal/config"
	"github.com/drewfoos/rift-stats/internal/handlers"
	"github.com/drewfoos/rift-stats/internal/middleware"
	"github.com/drewfoos/rift-stats/internal/riot"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/phayes/freeport"
	"github.com/sirupsen/logrus"
)

// Build wires the Riot client into a ready to serve app.
func Build(cfg *config.Config, log logrus.FieldLogger) *fiber.App {
	return New(cfg, NewClient(cfg, log), log)
}

func NewClient(cfg *config.Config, log logrus.FieldLogger) *riot.Client {
	return riot.New(riot.ClientConfig{
		APIKey:       cfg.APIKey,
		HostFormat:   cfg.HostFormat,
		MatchRouting: cfg.MatchRouting,
		MatchCount:   cfg.MatchCount,
		Timeout:      cfg.RequestTimeout,
	}, log)
}

// New creates the fiber app with middleware and every route mounted.
func New(cfg *config.Config, client handlers.Upstream, log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "rift-stats",
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: !cfg.IsDev(),
	})

	app.Use(middleware.AccessLog(log))
	app.Use(recover.New())
	app.Use(middleware.Cors(cfg))

	app.Get("/health", handlers.Health)

	handlers.New(&handlers.Dependencies{
		Riot:   client,
		Log:    log,
		Config: cfg,
	}).Register(app.Group(cfg.BasePath))

	return app
}

// ListenAddr returns the address for the local server; port 0 picks any free port.
func ListenAddr(cfg *config.Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		var err error
		if port, err = freeport.GetFreePort(); err != nil {
			return "", fmt.Errorf("failed to find a free port: %w", err)
		}
	}
	return fmt.Sprintf(":%d", port), nil
}
