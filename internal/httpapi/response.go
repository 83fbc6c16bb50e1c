package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
)

// Success writes a 200 envelope.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// Error writes an error envelope. kind is a machine-readable error code.
func Error(c *fiber.Ctx, code int, kind, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"error":   kind,
		"message": message,
	})
}

// errorHandler maps engine and auth errors returned by handlers onto
// status codes.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			verr    *billing.ValidationError
			authErr *billing.AuthError
			nf      *billing.NotFoundError
			pf      *billing.PartialFailureError
			se      *billing.StoreError
			fe      *fiber.Error
		)

		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"code":    fiber.StatusBadRequest,
				"status":  "error",
				"error":   "validation_error",
				"field":   verr.Field,
				"message": verr.Error(),
			})
		case errors.As(err, &authErr),
			errors.Is(err, auth.ErrInvalidCredentials),
			errors.Is(err, auth.ErrInvalidToken):
			return Error(c, fiber.StatusUnauthorized, "unauthorized", err.Error())
		case errors.Is(err, auth.ErrEmailExists):
			return Error(c, fiber.StatusConflict, "conflict", err.Error())
		case errors.As(err, &nf):
			return Error(c, fiber.StatusNotFound, "not_found", err.Error())
		case errors.As(err, &pf):
			log.WithError(err).WithField("path", c.Path()).Error("partial write")
			return Error(c, fiber.StatusInternalServerError, "partial_failure", err.Error())
		case errors.As(err, &se):
			log.WithError(err).WithField("op", se.Op).Error("store failure")
			return Error(c, fiber.StatusInternalServerError, "store_error", err.Error())
		case errors.As(err, &fe):
			return Error(c, fe.Code, "error", fe.Message)
		default:
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
			return Error(c, fiber.StatusInternalServerError, "internal_error", "internal server error")
		}
	}
}
