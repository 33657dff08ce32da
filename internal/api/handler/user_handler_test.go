package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

const validBody = `{"first_name":"Jane","last_name":"Doe","email":"jane.doe@example.com","date_of_birth":"1990-03-04","client_id":7}`

func newRequestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "alice")
	c.Set("role", domain.RoleOperator)
	return c, rec
}

func registeredUser(in ports.RegisterUserInput, client domain.Client, limited bool, limit int) *domain.User {
	return &domain.User{
		ID:             "4b7d7c2e-9d1f-4c55-8f0e-0b1f4f3e2a10",
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		EmailAddress:   in.Email,
		DateOfBirth:    in.DateOfBirth,
		Client:         client,
		HasCreditLimit: limited,
		CreditLimit:    limit,
		CreatedAt:      time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC),
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestUserHandler_Register_Standard(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			if in.FirstName != "Jane" || in.LastName != "Doe" || in.Email != "jane.doe@example.com" || in.ClientID != 7 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if !in.DateOfBirth.Equal(time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected date of birth: %v", in.DateOfBirth)
			}
			client := domain.Client{ID: 7, Name: "Acme", Type: domain.ClientStandard}
			return registeredUser(in, client, true, 500), nil
		},
	}
	c, rec := newRequestContext(http.MethodPost, "/v1/users", validBody)

	if err := NewUserHandler(stub, zerolog.Nop()).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["has_credit_limit"] != true || resp["credit_limit"] != float64(500) {
		t.Errorf("unexpected credit fields: %+v", resp)
	}
	if resp["date_of_birth"] != "1990-03-04" || resp["created_at"] != "2026-06-15T09:30:00Z" {
		t.Errorf("unexpected dates: %+v", resp)
	}
	client, ok := resp["client"].(map[string]any)
	if !ok || client["type"] != "StandardClient" {
		t.Errorf("unexpected client payload: %+v", resp["client"])
	}
	links, _ := resp["_links"].(map[string]any)
	if links["client"] != "/v1/clients/7" {
		t.Errorf("unexpected links: %+v", links)
	}
}

func TestUserHandler_Register_UnlimitedOmitsLimit(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			client := domain.Client{ID: 7, Name: "Acme", Type: domain.ClientVeryImportant}
			return registeredUser(in, client, false, 0), nil
		},
	}
	c, rec := newRequestContext(http.MethodPost, "/v1/users", validBody)

	if err := NewUserHandler(stub, zerolog.Nop()).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decode(t, rec)
	if resp["has_credit_limit"] != false {
		t.Errorf("expected has_credit_limit=false, got %v", resp["has_credit_limit"])
	}
	if _, ok := resp["credit_limit"]; ok {
		t.Errorf("credit_limit should be omitted for unlimited users")
	}
}

func TestUserHandler_Register_ServiceErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"rejection", domain.Reject(domain.ErrUnderage), http.StatusUnprocessableEntity, "registration rejected: user is under the minimum age"},
		{"client not found", domain.Reject(domain.ErrClientNotFound), http.StatusUnprocessableEntity, "registration rejected: client not found"},
		{"duplicate email", domain.ErrUserExists, http.StatusConflict, "user already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubUserService{
				registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
					return nil, tc.err
				},
			}
			c, rec := newRequestContext(http.MethodPost, "/v1/users", validBody)

			if err := NewUserHandler(stub, zerolog.Nop()).Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := decode(t, rec)["error"]; got != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestUserHandler_Register_CollaboratorFailureIsReturned(t *testing.T) {
	boom := errors.New("credit bureau down")
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			return nil, boom
		},
	}
	c, rec := newRequestContext(http.MethodPost, "/v1/users", validBody)

	err := NewUserHandler(stub, zerolog.Nop()).Register(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected collaborator error to reach the error handler, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("handler should not write a response, got %q", rec.Body.String())
	}
}

func TestUserHandler_Register_InvalidPayload(t *testing.T) {
	cases := map[string]string{
		"not json":      "not-json",
		"missing dob":   `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","client_id":7}`,
		"malformed dob": `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","date_of_birth":"04/03/1990","client_id":7}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubUserService{
				registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c, rec := newRequestContext(http.MethodPost, "/v1/users", body)

			_ = NewUserHandler(stub, zerolog.Nop()).Register(c)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestUserHandler_Register_EmptyNamesReachTheGates(t *testing.T) {
	called := false
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			called = true
			return nil, domain.Reject(domain.ErrInvalidFirstName)
		},
	}
	body := `{"first_name":"","last_name":"Doe","email":"jane@example.com","date_of_birth":"1990-03-04","client_id":7}`
	c, rec := newRequestContext(http.MethodPost, "/v1/users", body)

	_ = NewUserHandler(stub, zerolog.Nop()).Register(c)

	if !called {
		t.Fatalf("service should decide on empty names")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestUserHandler_Register_UnknownClientIDsReachTheGates(t *testing.T) {
	bodies := map[string]string{
		"missing":  `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","date_of_birth":"1990-03-04"}`,
		"zero":     `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","date_of_birth":"1990-03-04","client_id":0}`,
		"negative": `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","date_of_birth":"1990-03-04","client_id":-3}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var gotID *int
			stub := &stubUserService{
				registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
					id := in.ClientID
					gotID = &id
					return nil, domain.Reject(domain.ErrClientNotFound)
				},
			}
			c, rec := newRequestContext(http.MethodPost, "/v1/users", body)

			if err := NewUserHandler(stub, zerolog.Nop()).Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if gotID == nil {
				t.Fatalf("service should decide on the client id")
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			if got := decode(t, rec)["error"]; got != "registration rejected: client not found" {
				t.Errorf("unexpected message %q", got)
			}
		})
	}
}

func TestUserHandler_Register_MissingClaims(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newRequestContext(http.MethodPost, "/v1/users", validBody)
	c.Set("role", "")

	err := NewUserHandler(stub, zerolog.Nop()).Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u-1" {
				return nil, domain.ErrUserNotFound
			}
			in := ports.RegisterUserInput{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
			u := registeredUser(in, domain.Client{ID: 3, Type: domain.ClientImportant}, true, 1000)
			u.ID = "u-1"
			return u, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	t.Run("found", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/v1/users/u-1", "")
		c.SetParamNames("id")
		c.SetParamValues("u-1")

		if err := h.Get(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		resp := decode(t, rec)
		if resp["id"] != "u-1" || resp["credit_limit"] != float64(1000) {
			t.Errorf("unexpected payload: %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		c, rec := newRequestContext(http.MethodGet, "/v1/users/nope", "")
		c.SetParamNames("id")
		c.SetParamValues("nope")

		_ = h.Get(c)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
