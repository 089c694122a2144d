package middleware

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRequestTimeout_CompletesWithinDeadline(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/api/v1/appointments")

	called := false
	h := RequestTimeout(5 * time.Second)(func(c echo.Context) error {
		called = true
		return okHandler(c)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequestTimeout_ReturnsTimeoutOnExpiry(t *testing.T) {
	c, rec := newCtx(http.MethodGet, "/api/v1/appointments")

	h := RequestTimeout(50 * time.Millisecond)(func(c echo.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return okHandler(c)
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	})

	// The middleware writes the 504 JSON response itself.
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("expected status 504, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in timeout response")
	}
}

func TestRequestTimeout_ContextHasDeadline(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/api/v1/appointments")

	h := RequestTimeout(30 * time.Second)(func(c echo.Context) error {
		if _, ok := c.Request().Context().Deadline(); !ok {
			t.Error("expected context to have a deadline")
		}
		return okHandler(c)
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestTimeout_PropagatesHandlerError(t *testing.T) {
	c, _ := newCtx(http.MethodGet, "/api/v1/appointments/123")

	h := RequestTimeout(5 * time.Second)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	})
	err := h(c)
	if err == nil {
		t.Fatal("expected error from handler")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}
