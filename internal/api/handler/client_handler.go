package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

// ClientHandler exposes read access to clients.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "id must be a positive integer"})
	}

	client, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "client not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(*client))
}
