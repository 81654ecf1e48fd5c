package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/woiya/marketplace/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthorized", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"deleted caller", fmt.Errorf("wallet: %w", domain.ErrCallerGone), http.StatusUnauthorized, "user not found"},
		{"forbidden", domain.ErrNotJobCreator, http.StatusForbidden, "only job creator can select bids"},
		{"not found", domain.ErrJobNotFound, http.StatusNotFound, "job not found"},
		{"conflict", domain.ErrDuplicateBid, http.StatusBadRequest, "you have already placed a bid on this job"},
		{"validation", domain.ErrInvalidCategory, http.StatusBadRequest, "invalid job category"},
		{"upstream", domain.ErrPaymentCreationFailed, http.StatusBadRequest, "payment creation failed"},
		{"wrapped", fmt.Errorf("release payment: %w", domain.ErrNotInEscrow), http.StatusBadRequest, "payment not in escrow"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, "rate limit exceeded"},
		{"bare kind", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"unknown", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusAccepted); err != nil {
		t.Fatalf("write: %v", err)
	}
	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrJobNotFound, c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected committed status to stay 202, got %d", rec.Code)
	}
}
