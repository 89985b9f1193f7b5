package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/otp"
	"github.com/gofiber/fiber/v2"
)

// DispatchOTP sends a one-time password to the applicant's registered
// mobile number or email through the messaging gateway.
func DispatchOTP(svc otp.OTPService, logger *slog.Logger) fiber.Handler {
	const otpContextTimeout = 10 * time.Second

	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "DispatchOTP"))

	return func(c *fiber.Ctx) error {
		if svc == nil {
			logger.Error("missing otp service")
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		var req otp.DispatchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Context(), otpContextTimeout)
		defer cancel()

		result, err := svc.Dispatch(ctx, req)
		if err != nil {
			logger.Error("otp dispatch failed", slog.Any("err", err))
			return fiber.NewError(fiber.StatusBadGateway, "otp gateway request failed")
		}

		return c.Status(fiber.StatusOK).JSON(result)
	}
}
