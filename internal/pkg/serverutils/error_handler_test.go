package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(testLogger{}))
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandlerCodedError(t *testing.T) {
	status, body := doRequest(t, newTestApp(dto.ErrUnknownPlan))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "unknown_plan", body["error"])
}

func TestErrorHandlerQuotaExceeded(t *testing.T) {
	status, body := doRequest(t, newTestApp(&dto.QuotaExceededError{
		Plan:  entity.PlanFree,
		Limit: 3,
		Used:  3,
	}))

	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "quota_exceeded", body["error"])
	assert.Equal(t, "free", body["plan"])
	assert.Equal(t, float64(3), body["limit_per_month"])
	assert.Equal(t, float64(3), body["used_this_month"])
}

func TestErrorHandlerFollowupLimitExceeded(t *testing.T) {
	status, body := doRequest(t, newTestApp(&dto.FollowupLimitExceededError{
		Plan:   entity.PlanBasic,
		Limit:  3,
		Used:   3,
		HandId: "h-1",
	}))

	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "followup_limit_exceeded", body["error"])
	assert.Equal(t, float64(3), body["followups_per_hand"])
	assert.Equal(t, float64(3), body["used_for_this_hand"])
}

func TestErrorHandlerUpstreamError(t *testing.T) {
	status, body := doRequest(t, newTestApp(&dto.UpstreamError{
		Source: "llm",
		Err:    errors.New("timeout"),
	}))

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "upstream_error", body["error"])
}

func TestErrorHandlerValidation(t *testing.T) {
	type payload struct {
		UserId string `validate:"required,uuid"`
	}
	err := ValidateRequest(payload{})
	require.Error(t, err)

	status, body := doRequest(t, newTestApp(err))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "bad_request", body["error"])
}

func TestErrorHandlerUnknownErrorIsServerError(t *testing.T) {
	status, body := doRequest(t, newTestApp(errors.New("something broke")))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "server_error", body["error"])
}

func TestErrorHandlerFiberClientError(t *testing.T) {
	status, body := doRequest(t, newTestApp(fiber.ErrUnprocessableEntity))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "bad_request", body["error"])
}

func TestErrorHandlerPassThroughOnSuccess(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(testLogger{}))
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"ok": true})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
