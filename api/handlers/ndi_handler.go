package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/ndi"
	"github.com/gofiber/fiber/v2"
)

const ndiContextTimeout = 10 * time.Second

type createProofRequestBody struct {
	SessionID string `json:"sessionId"`
}

// CreateProofRequest asks the verifier for a fresh proof request and
// hands the resulting thread to the watcher, which polls it to a
// terminal status in the background.
func CreateProofRequest(svc ndi.NDIService, watcher *ndi.Watcher, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "CreateProofRequest"))

	return func(c *fiber.Ctx) error {
		if svc == nil || watcher == nil {
			logger.Error("missing ndi service")
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		var body createProofRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.SessionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sessionId is required")
		}

		ctx, cancel := context.WithTimeout(c.Context(), ndiContextTimeout)
		defer cancel()

		proofReq, err := svc.CreateProofRequest(ctx)
		if err != nil {
			logger.Error("failed to create proof request", slog.Any("err", err))
			return fiber.NewError(fiber.StatusBadGateway, "identity verifier request failed")
		}

		session := ndi.NewSession(proofReq.ThreadID, body.SessionID)
		if err := watcher.Watch(session, proofReq.ExpiresAt); err != nil {
			logger.Error("failed to start status watcher", slog.Any("err", err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to track proof request")
		}

		return c.Status(fiber.StatusCreated).JSON(proofReq)
	}
}

// GetProofRequestStatus reads the watcher-maintained session for a
// thread. The wizard polls this until the status turns terminal.
func GetProofRequestStatus(sessions ndi.SessionStore, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		if sessions == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		threadID := c.Params("threadId")

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		session, err := sessions.Load(ctx, threadID)
		if err != nil {
			if errors.Is(err, ndi.ErrSessionNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "unknown proof request")
			}
			logger.Error("failed to load session", slog.Any("err", err))
			return fiber.ErrInternalServerError
		}

		return c.Status(fiber.StatusOK).JSON(session)
	}
}

// CancelProofRequest stops the watcher's polling for a thread, for
// when the applicant abandons the QR step or switches paths.
func CancelProofRequest(watcher *ndi.Watcher, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		if watcher == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		threadID := c.Params("threadId")

		if !watcher.Cancel(threadID) {
			return fiber.NewError(fiber.StatusNotFound, "no active proof request")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
