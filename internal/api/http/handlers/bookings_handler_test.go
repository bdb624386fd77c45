package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/hjalloh/campsite/internal/api/http"
	"github.com/hjalloh/campsite/internal/api/http/handlers"
	"github.com/hjalloh/campsite/internal/config"
	"github.com/hjalloh/campsite/internal/events"
	"github.com/hjalloh/campsite/internal/observability"
	"github.com/hjalloh/campsite/internal/persistence"
	"github.com/hjalloh/campsite/internal/repository"
	"github.com/hjalloh/campsite/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	repo := repository.NewMemoryBookingRepository()
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	bookingService := service.NewBookingService(
		config.BookingConfig{MaxStayDays: 3},
		service.BookingDependencies{BookingRepo: repo, Dispatcher: dispatcher, Logger: logger},
	)
	availabilityService := service.NewAvailabilityService(repo, nil, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler("campsite-test", "test", &persistence.Postgres{}, &persistence.Redis{}, metrics),
		Bookings:     handlers.NewBookingsHandler(bookingService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
	})
	return app
}

func bookingBody(arrival, departure string) io.Reader {
	payload, _ := json.Marshal(map[string]string{
		"visitor_email":     "hamidou.diallo@example.com",
		"visitor_full_name": "Hamidou Diallo",
		"arrival_date":      arrival,
		"departure_date":    departure,
	})
	return bytes.NewReader(payload)
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body io.Reader) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCreateBooking_Created(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotZero(t, data["id"])
	assert.Contains(t, data["reference_key"], "BKG-")
}

func TestCreateBooking_MissingFields(t *testing.T) {
	app := newTestApp(t)

	payload, _ := json.Marshal(map[string]string{"arrival_date": "2026-09-10", "departure_date": "2026-09-13"})
	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bytes.NewReader(payload))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestCreateBooking_InvalidRange(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-13", "2026-09-10"))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestCreateBooking_Conflict(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-11", "2026-09-12"))

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "CONFLICT", errBody["code"])
}

func TestModifyBooking_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPut, "/bookings/999", bookingBody("2026-09-10", "2026-09-13"))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestModifyBooking_OK(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := int64(body["data"].(map[string]any)["id"].(float64))

	resp, body = doJSON(t, app, http.MethodPut, fmt.Sprintf("/bookings/%d", id), bookingBody("2026-09-11", "2026-09-14"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "2026-09-11", data["arrival_date"])
	assert.Equal(t, "2026-09-14", data["departure_date"])
}

func TestCancelBooking_FreesRange(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := int64(body["data"].(map[string]any)["id"].(float64))

	resp, body = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", body["data"].(map[string]any)["status"])

	// same range can be booked again
	resp, _ = doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCancelBooking_InvalidID(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodDelete, "/bookings/not-a-number", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListBookings_FiltersWindow(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-10", "2026-09-13"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-10-10", "2026-10-13"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/bookings/?from=2026-09-01&to=2026-09-30", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 1)
}

func TestListBookings_InvalidDateParam(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/bookings/?from=banana", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAvailabilities_GapsAroundBooking(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/bookings/", bookingBody("2026-09-06", "2026-09-09"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/availabilities?from=2026-09-01&to=2026-09-30", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "2026-09-01", first["start"])
	assert.Equal(t, "2026-09-06", first["end"])
	second := data[1].(map[string]any)
	assert.Equal(t, "2026-09-09", second["start"])
	assert.Equal(t, "2026-09-30", second["end"])
}

func TestListAvailabilities_InvalidRange(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/availabilities?from=2026-09-30&to=2026-09-01", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/health/live", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alive", body["status"])
}
