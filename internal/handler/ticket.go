package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/service"
)

// TicketHandler exposes ticket reads and lifecycle operations.
type TicketHandler struct {
	Tickets *service.TicketService
}

func NewTicketHandler(t *service.TicketService) *TicketHandler {
	return &TicketHandler{Tickets: t}
}

// ListMine returns the caller's tickets.
func (h *TicketHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListMine(ctx, uid)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// ListForUser returns one user's tickets (self or staff).
func (h *TicketHandler) ListForUser(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	target, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListForUser(ctx, target, uid, getRole(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get returns one hydrated ticket, owner or staff only.
func (h *TicketHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Tickets.Get(ctx, id, uid, getRole(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// ListByBooking returns the tickets sharing one booking reference.
func (h *TicketHandler) ListByBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListByBookingRef(ctx, c.Param("ref"), uid, getRole(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// ListByPerformance returns every ticket of one performance (staff).
func (h *TicketHandler) ListByPerformance(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListByPerformance(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// CheckIn marks a ticket as used at the door (staff). Idempotent on
// repeat; rejected for cancelled tickets.
func (h *TicketHandler) CheckIn(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	t, err := h.Tickets.CheckIn(ctx, id, uid)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Cancel soft-deletes one ticket (owner or staff).
func (h *TicketHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Tickets.Cancel(ctx, id, uid, getRole(c)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ticket cancelled"})
}

// bookingUpdateReq carries the optional flags of a bulk booking
// update. Pointers distinguish "leave alone" from an explicit false.
type bookingUpdateReq struct {
	IsCheckedIn *bool `json:"is_checked_in"`
	Cancelled   *bool `json:"cancelled"`
}

// UpdateBooking applies flags to every ticket of a booking reference
// (staff). An empty body means a plain bulk check-in. Fails when the
// reference resolves to zero tickets.
func (h *TicketHandler) UpdateBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingUpdateReq
	_ = c.Bind(&req) // body is optional

	ctx, cancel := reqContext(c)
	defer cancel()

	n, err := h.Tickets.UpdateBooking(ctx, c.Param("ref"), req.IsCheckedIn, req.Cancelled, uid)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}

// ListGrouped returns every ticket folded into per-booking groups
// (staff overview).
func (h *TicketHandler) ListGrouped(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	groups, err := h.Tickets.ListGrouped(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

// CancelBooking bulk-cancels every ticket of a booking reference
// (staff). Fails when the reference resolves to zero tickets.
func (h *TicketHandler) CancelBooking(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	n, err := h.Tickets.CancelBooking(ctx, c.Param("ref"), uid)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cancelled": n})
}
