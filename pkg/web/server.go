// Package web serves the conversation pipeline over HTTP.
package web

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/converselabs/go-converse/pkg/recordings"
	"github.com/converselabs/go-converse/pkg/turn"
)

// GenericErrorMessage is the only failure detail callers ever see for
// non-validation faults. Engine errors and stack traces stay in the logs.
const GenericErrorMessage = "An error occurred while processing the request."

// HealthCheck probes one dependency for the health endpoint.
type HealthCheck func(ctx context.Context) error

// Server is the HTTP front of the turn pipeline and the recordings store.
type Server struct {
	app      *fiber.App
	port     string
	pipeline *turn.Pipeline
	store    recordings.Store
	logger   *slog.Logger

	checkNames []string
	checks     map[string]HealthCheck
}

// NewServer creates the HTTP server and registers all routes.
// A nil logger falls back to slog.Default().
func NewServer(port string, pipeline *turn.Pipeline, store recordings.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		port:     port,
		pipeline: pipeline,
		store:    store,
		logger:   logger.With("component", "web"),
		checks:   make(map[string]HealthCheck),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-converse",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	// Panics become classified 500s instead of dropped connections
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	api := app.Group("/api")
	api.Post("/converse", s.handleConverse)
	api.Get("/health", s.handleHealth)

	// Study recording routes keep their historical paths
	app.Get("/recordAudio", s.handleListRecordings)
	app.Get("/recordAudio/:id", s.handleGetRecording)
	app.Post("/recordAudio/add", s.handleAddRecording)

	s.app = app
	return s
}

// RegisterHealthCheck adds a named dependency probe to the health endpoint.
// Call before Start; checks run in registration order.
func (s *Server) RegisterHealthCheck(name string, check HealthCheck) {
	if _, exists := s.checks[name]; !exists {
		s.checkNames = append(s.checkNames, name)
	}
	s.checks[name] = check
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorBody is the wire shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

// errorHandler classifies failures into the two caller-visible outcomes:
// validation problems return 400 with their detail, everything else
// returns 500 with the fixed generic message. Full detail is logged first.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var ve *turn.Error
	if errors.As(err, &ve) && ve.Kind == turn.KindValidation {
		s.logger.Warn("rejected request",
			"path", c.Path(),
			"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
			"error", err,
		)
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Message: ve.Message})
	}

	// Router-level errors (404, 405) keep their own codes and safe messages
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(errorBody{Message: fe.Message})
	}

	s.logger.Error("request failed",
		"path", c.Path(),
		"kind", turn.KindOf(err).String(),
		"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Message: GenericErrorMessage})
}
