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

	"github.com/legacyapp/user-service/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"rejection", domain.Reject(domain.ErrCreditLimitTooLow), http.StatusUnprocessableEntity, "registration rejected: credit limit below minimum"},
		{"rejected missing client", domain.Reject(domain.ErrClientNotFound), http.StatusUnprocessableEntity, "registration rejected: client not found"},
		{"missing client", fmt.Errorf("get client: %w", domain.ErrClientNotFound), http.StatusNotFound, "client not found"},
		{"missing user", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate user", fmt.Errorf("insert: %w", domain.ErrUserExists), http.StatusConflict, "user already exists"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.message {
				t.Errorf("expected %q, got %q", tc.message, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected committed status to survive, got %d", rec.Code)
	}
}
