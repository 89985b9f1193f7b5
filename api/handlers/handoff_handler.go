package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/gofiber/fiber/v2"
)

type handoffResponse struct {
	Found    bool                        `json:"found"`
	FormData *formdata.CanonicalFormData `json:"formData,omitempty"`
}

func handoffKey(c *fiber.Ctx) (handoff.Key, error) {
	source := handoff.Source(c.Params("source"))
	if !source.Valid() {
		return handoff.Key{}, fiber.NewError(fiber.StatusBadRequest, "source must be customer or ndi")
	}

	return handoff.Key{
		SessionID: c.Params("sessionId"),
		Source:    source,
	}, nil
}

// GetHandoff returns parked form data for a wizard session. Absence is
// an ordinary outcome, so it answers found:false rather than 404.
func GetHandoff(store handoff.Store, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		key, err := handoffKey(c)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		data, err := store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, handoff.ErrNotFound) {
				return c.Status(fiber.StatusOK).JSON(handoffResponse{Found: false})
			}
			logger.Error("failed to read hand-off data", slog.Any("err", err))
			return fiber.ErrInternalServerError
		}

		return c.Status(fiber.StatusOK).JSON(handoffResponse{
			Found:    true,
			FormData: &data,
		})
	}
}

// ClearHandoff removes parked form data once the wizard has consumed
// it, or when the applicant restarts verification.
func ClearHandoff(store handoff.Store, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		if store == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		key, err := handoffKey(c)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		if err := store.Clear(ctx, key); err != nil {
			logger.Error("failed to clear hand-off data", slog.Any("err", err))
			return fiber.ErrInternalServerError
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
