package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/choice"
	"github.com/bdbl/loan-verification-api/pkg/customer"
	"github.com/bdbl/loan-verification-api/pkg/formdata"
	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/gofiber/fiber/v2"
)

const lookupContextTimeout = 10 * time.Second

type customerLookupBody struct {
	SessionID            string `json:"sessionId"`
	IdentificationType   string `json:"identificationType"`
	IdentificationNumber string `json:"identificationNumber"`
	MobileNumber         string `json:"mobileNumber"`
	Email                string `json:"email"`
}

type customerLookupResponse struct {
	Found    bool                        `json:"found"`
	FormData *formdata.CanonicalFormData `json:"formData,omitempty"`
}

// CustomerLookup resolves an existing customer in the core banking
// system, maps the matched record into canonical form data, and parks
// it in the hand-off store for the wizard to pick up after OTP.
func CustomerLookup(svc customer.CustomerService, store handoff.Store, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "CustomerLookup"))

	return func(c *fiber.Ctx) error {
		if svc == nil || store == nil {
			logger.Error("missing customer service")
			return fiber.NewError(fiber.StatusInternalServerError, "server misconfigured")
		}

		var body customerLookupBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.SessionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sessionId is required")
		}

		req := customer.LookupRequest{
			IdentificationType:   body.IdentificationType,
			IdentificationNumber: body.IdentificationNumber,
			MobileNumber:         body.MobileNumber,
			Email:                body.Email,
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx, cancel := context.WithTimeout(c.Context(), lookupContextTimeout)
		defer cancel()

		result, err := svc.Lookup(ctx, req)
		if err != nil {
			logger.Error("customer lookup failed", slog.Any("err", err))
			return fiber.NewError(fiber.StatusBadGateway, "customer lookup upstream request failed")
		}

		logger.Info("customer lookup",
			slog.String("result", choice.Ternary(result.Found, "found", "not-found")),
		)

		if !result.Found {
			return c.Status(fiber.StatusOK).JSON(customerLookupResponse{Found: false})
		}

		data := customer.MapRecord(result.Record)

		key := handoff.Key{SessionID: body.SessionID, Source: handoff.SourceCustomer}
		if err := store.Put(ctx, key, data); err != nil {
			logger.Error("failed to store hand-off data", slog.Any("err", err))
			return fiber.ErrInternalServerError
		}

		return c.Status(fiber.StatusOK).JSON(customerLookupResponse{
			Found:    true,
			FormData: &data,
		})
	}
}
