package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/legacyapp/user-service/internal/api/metrics"
	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user registration.
type UserHandler struct {
	service ports.UserService
	log     zerolog.Logger
}

func NewUserHandler(service ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// Register handles POST /v1/users.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerUserRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	operator, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input, err := toRegisterUserInput(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "date_of_birth must be formatted as YYYY-MM-DD"})
	}

	user, err := h.service.RegisterUser(c.Request().Context(), input)
	if err != nil {
		switch {
		case domain.IsRejection(err):
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			metrics.RejectionsTotal.WithLabelValues(domain.RejectionReason(err)).Inc()
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			metrics.RejectionsTotal.WithLabelValues("user_exists").Inc()
			return c.JSON(http.StatusConflict, errorResponse{Error: "user already exists"})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("accepted").Inc()
	h.log.Info().
		Str("operator", operator).
		Str("user_id", user.ID).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("registration accepted")
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a registered user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
