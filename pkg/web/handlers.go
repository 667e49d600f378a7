package web

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/converselabs/go-converse/pkg/recordings"
	"github.com/converselabs/go-converse/pkg/turn"
)

// healthCheckTimeout bounds each dependency probe.
const healthCheckTimeout = 5 * time.Second

// handleConverse runs one conversation turn.
func (s *Server) handleConverse(c *fiber.Ctx) error {
	req, err := turn.ParseRequest(c.Body())
	if err != nil {
		return err
	}

	resp, err := s.pipeline.Process(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// handleListRecordings returns all saved study recordings.
func (s *Server) handleListRecordings(c *fiber.Ctx) error {
	recs, err := s.store.List(c.UserContext())
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []recordings.Recording{}
	}
	return c.JSON(recs)
}

// handleGetRecording returns a single recording by ID.
func (s *Server) handleGetRecording(c *fiber.Ctx) error {
	rec, err := s.store.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, recordings.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "recording not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

// handleAddRecording saves a new study recording.
func (s *Server) handleAddRecording(c *fiber.Ctx) error {
	var rec recordings.Recording
	if err := c.BodyParser(&rec); err != nil {
		return turn.Validationf("malformed request body")
	}

	id, err := s.store.Save(c.UserContext(), &rec)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// handleHealth probes every registered dependency.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	healthy := true
	results := make(map[string]string, len(s.checkNames))
	for _, name := range s.checkNames {
		if err := s.checks[name](ctx); err != nil {
			s.logger.Warn("health check failed", "check", name, "error", err)
			results[name] = "unhealthy"
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := fiber.StatusOK
	overall := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": results,
	})
}
