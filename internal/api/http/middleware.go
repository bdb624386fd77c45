package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hjalloh/campsite/internal/domain"
	"github.com/hjalloh/campsite/internal/observability"
	apperrors "github.com/hjalloh/campsite/pkg/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := mapServiceError(err)
				if metrics != nil {
					metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				}
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// mapServiceError translates the booking error taxonomy to HTTP statuses:
// invalid range to 400, missing booking to 404, date conflict to 409.
func mapServiceError(err error) *apperrors.DomainError {
	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return apperrors.ToDomainError(apperrors.NewValidationError(err.Error(), nil))
	case errors.Is(err, domain.ErrNotFound):
		return apperrors.ToDomainError(apperrors.NewNotFound(err.Error(), nil))
	case errors.Is(err, domain.ErrAlreadyBooked):
		return apperrors.ToDomainError(apperrors.NewConflict(err.Error(), nil))
	default:
		return apperrors.ToDomainError(err)
	}
}
