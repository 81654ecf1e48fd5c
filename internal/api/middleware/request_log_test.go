package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLogger_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/api/jobs", func(c echo.Context) error {
		c.Set(ContextUserID, "u-9")
		return c.NoContent(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs?limit=5", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one json log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected warn level for 4xx, got %v", entry["level"])
	}
	if entry["uri"] != "/api/jobs?limit=5" || entry["method"] != "GET" {
		t.Fatalf("unexpected request fields: %+v", entry)
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected status: %v", entry["status"])
	}
	if entry["user_id"] != "u-9" {
		t.Fatalf("expected user_id to be logged, got %v", entry["user_id"])
	}
}
