package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agentlogco/spool/pkg/connector/openaitrace"
	"github.com/agentlogco/spool/pkg/eventstream"
	"github.com/agentlogco/spool/pkg/store"
)

// Server is the API server for importing and querying the spool system
type Server struct {
	config    Config
	storer    store.Driver
	converter *openaitrace.Converter
	publisher eventstream.Publisher
	logger    *zap.Logger
	app       *fiber.App
}

// NewServer creates a new API server.
// The storer and publisher are injected to allow sharing with other
// components (e.g., the import command when not run as a singleton).
func NewServer(config Config, storer store.Driver, converter *openaitrace.Converter, publisher eventstream.Publisher, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:    config,
		storer:    storer,
		converter: converter,
		publisher: publisher,
		logger:    logger,
		app:       app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/runs", s.handleImportRun)
	app.Get("/runs", s.handleListRuns)
	app.Get("/runs/:id", s.handleGetRun)
	app.Get("/runs/:id/timeline", s.handleGetTimeline)
	app.Get("/runs/:id/metrics", s.handleGetMetrics)
	app.Get("/runs/:id/steps/:stepID", s.handleGetStep)
	app.Put("/runs/:id/steps/:stepID/outputs", s.handleSetStepOutputs)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
