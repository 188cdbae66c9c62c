package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/service"
)

// BookingHandler exposes the checkout flow and confirmation lookups.
type BookingHandler struct {
	Bookings *service.BookingService
	Tickets  *service.TicketService
}

func NewBookingHandler(b *service.BookingService, t *service.TicketService) *BookingHandler {
	return &BookingHandler{Bookings: b, Tickets: t}
}

type bookingResp struct {
	Success          bool     `json:"success"`
	BookingReference string   `json:"booking_reference,omitempty"`
	TicketIDs        []uint64 `json:"ticket_ids,omitempty"`
	Status           string   `json:"status"`
	TotalCents       int64    `json:"total_cents"`
	Message          string   `json:"message,omitempty"`
}

// Create runs one booking call. Validation failures come back as 400
// with the orchestrator's message; seat conflicts as 409.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CreatedBy = uid

	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Bookings.CreateBooking(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		return writeErr(c, err)
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": res.Message})
	}

	ids := make([]uint64, len(res.Tickets))
	for i, t := range res.Tickets {
		ids[i] = t.ID
	}
	return c.JSON(http.StatusOK, bookingResp{
		Success:          true,
		BookingReference: res.BookingReference,
		TicketIDs:        ids,
		Status:           "CONFIRMED",
		TotalCents:       res.TotalCents,
		Message:          res.Message,
	})
}

// Confirmation returns the tickets minted under a booking reference.
func (h *BookingHandler) Confirmation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ref := c.Param("ref")

	ctx, cancel := reqContext(c)
	defer cancel()

	tickets, err := h.Tickets.ListByBookingRef(ctx, ref, uid, getRole(c))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking_reference": ref,
		"tickets":           tickets,
	})
}
