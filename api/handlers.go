package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agentlogco/spool/pkg/eventstream"
	"github.com/agentlogco/spool/pkg/store"
)

// ErrorResponse is the JSON error body returned by every failing handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleImportRun converts a raw trace document, persists the resulting run,
// and publishes a run-imported event.
func (s *Server) handleImportRun(c *fiber.Ctx) error {
	var trace map[string]any
	if err := json.Unmarshal(c.Body(), &trace); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid trace JSON: " + err.Error()})
	}

	run, err := s.converter.Convert(trace)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	if _, err := s.storer.Put(c.Context(), run); err != nil {
		s.logger.Error("failed to store run", zap.String("run_id", run.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store run"})
	}

	event := eventstream.NewRunImportedEvent(run, eventstream.EventSource{Connector: "openaitrace"})
	if err := s.publisher.PublishRun(c.Context(), event); err != nil {
		// The run is already persisted; a publish failure is logged, not
		// surfaced to the importer.
		s.logger.Warn("failed to publish run event", zap.String("run_id", run.ID), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(run)
}

// handleListRuns returns all stored runs.
func (s *Server) handleListRuns(c *fiber.Ctx) error {
	runs, err := s.storer.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to list runs"})
	}

	return c.JSON(map[string]any{
		"count": len(runs),
		"runs":  runs,
	})
}

// handleGetRun returns a single run by its id.
func (s *Server) handleGetRun(c *fiber.Ctx) error {
	run, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.runError(c, err)
	}

	return c.JSON(run)
}

// handleGetTimeline returns the chronological event view of a run.
func (s *Server) handleGetTimeline(c *fiber.Ctx) error {
	run, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.runError(c, err)
	}

	return c.JSON(map[string]any{
		"run_id": run.ID,
		"events": run.Timeline(),
	})
}

// handleGetMetrics returns the aggregate metrics of a run.
func (s *Server) handleGetMetrics(c *fiber.Ctx) error {
	run, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.runError(c, err)
	}

	return c.JSON(run.Metrics())
}

// handleGetStep returns a single step, found depth first across the run's
// step tree.
func (s *Server) handleGetStep(c *fiber.Ctx) error {
	run, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.runError(c, err)
	}

	step, ok := run.FindStepByID(c.Params("stepID"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "step not found: " + c.Params("stepID")})
	}

	return c.JSON(step)
}

// handleSetStepOutputs replaces one step's outputs map and persists the run.
// This is the write half of the viewer contract: read a snapshot graph, edit
// a payload field, write it back.
func (s *Server) handleSetStepOutputs(c *fiber.Ctx) error {
	var outputs map[string]any
	if err := json.Unmarshal(c.Body(), &outputs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid outputs JSON: " + err.Error()})
	}

	run, err := s.storer.Get(c.Context(), c.Params("id"))
	if err != nil {
		return s.runError(c, err)
	}

	step, ok := run.FindStepByID(c.Params("stepID"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "step not found: " + c.Params("stepID")})
	}

	step.Outputs = outputs

	if _, err := s.storer.Put(c.Context(), run); err != nil {
		s.logger.Error("failed to store run", zap.String("run_id", run.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store run"})
	}

	return c.JSON(step)
}

// runError maps store failures to JSON error responses.
func (s *Server) runError(c *fiber.Ctx, err error) error {
	var notFound store.ErrNotFound
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load run"})
}
