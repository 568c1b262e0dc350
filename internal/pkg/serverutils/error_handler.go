package serverutils

import (
	"errors"

	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into the
// wire envelope. Entitlement denials keep their numbers so clients can render
// upgrade prompts; everything unrecognized collapses to server_error.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs validator.ValidationErrors
		var quotaErr *dto.QuotaExceededError
		var followupErr *dto.FollowupLimitExceededError
		var codedErr *dto.CodedError
		var upstreamErr *dto.UpstreamError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &validationErrs):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse("bad_request"))

		case errors.As(err, &quotaErr):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"ok":              false,
				"error":           "quota_exceeded",
				"plan":            quotaErr.Plan,
				"limit_per_month": quotaErr.Limit,
				"used_this_month": quotaErr.Used,
			})

		case errors.As(err, &followupErr):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"ok":                 false,
				"error":              "followup_limit_exceeded",
				"plan":               followupErr.Plan,
				"followups_per_hand": followupErr.Limit,
				"used_for_this_hand": followupErr.Used,
			})

		case errors.As(err, &codedErr):
			if codedErr.Status >= fiber.StatusInternalServerError {
				log.Error("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  codedErr.Code,
					"error": err.Error(),
				})
			}
			return ctx.Status(codedErr.Status).JSON(ErrorResponse(codedErr.Code))

		case errors.As(err, &upstreamErr):
			log.Error("http", "upstream failure", map[string]interface{}{
				"path":   ctx.Path(),
				"source": upstreamErr.Source,
				"error":  upstreamErr.Error(),
			})
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse("upstream_error"))

		case errors.As(err, &fiberErr):
			// Body parse failures and friends surface as *fiber.Error.
			if fiberErr.Code < fiber.StatusInternalServerError {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse("bad_request"))
			}
			log.Error("http", "request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("server_error"))

		default:
			log.Error("http", "unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("server_error"))
		}
	}
}
