package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// TicketTypeHandler covers the ticket type lookup table (admin).
type TicketTypeHandler struct {
	Types *repository.TicketTypeRepo
}

func NewTicketTypeHandler(t *repository.TicketTypeRepo) *TicketTypeHandler {
	return &TicketTypeHandler{Types: t}
}

type ticketTypeReq struct {
	TypeName string `json:"type_name"`
}

// Create adds a ticket type; names are unique.
func (h *TicketTypeHandler) Create(c echo.Context) error {
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.TypeName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type_name required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Types.Create(ctx, name)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, model.TicketType{ID: id, TypeName: name})
}

// List returns all ticket types.
func (h *TicketTypeHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	types, err := h.Types.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, types)
}

// Update renames a ticket type.
func (h *TicketTypeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.TypeName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type_name required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Types.Update(ctx, model.TicketType{ID: id, TypeName: name}); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, model.TicketType{ID: id, TypeName: name})
}

// Delete removes an unreferenced ticket type; 409 when prices still
// point at it.
func (h *TicketTypeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket type id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Types.Delete(ctx, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ticket type deleted"})
}
