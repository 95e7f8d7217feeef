package serverutils

import (
	"errors"

	"broadcast-eval-be/pkg/blob"
	"broadcast-eval-be/pkg/evalindex"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates the error taxonomy into the response
// envelope: validation failures are 4xx, OCC exhaustion is 409, store
// failures are 5xx.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponse("invalid request", validationErr.Message))

		case errors.Is(err, evalindex.ErrWriteConflict):
			return ctx.Status(fiber.StatusConflict).JSON(
				ErrorResponse("index write conflict", "another writer updated the index; please retry the action"))

		case errors.Is(err, evalindex.ErrEntryNotFound), errors.Is(err, blob.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(
				ErrorResponse("not found", err.Error()))

		case errors.Is(err, evalindex.ErrStoreUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(
				ErrorResponse("storage backend unavailable", err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse("internal server error", err.Error()))
	}
}
