package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// ShowHandler covers show CRUD.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Venues *repository.VenueRepo
}

func NewShowHandler(s *repository.ShowRepo, v *repository.VenueRepo) *ShowHandler {
	return &ShowHandler{Shows: s, Venues: v}
}

type showReq struct {
	VenueID     uint64 `json:"venue_id"`
	ShowName    string `json:"show_name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (r showReq) validate() string {
	if strings.TrimSpace(r.ShowName) == "" {
		return "show_name required"
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return "start_date must be YYYY-MM-DD"
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return "end_date must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return "end_date must not precede start_date"
	}
	return ""
}

// Create adds a show under a venue (admin).
func (h *ShowHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	// The venue must exist before a show can be booked into it.
	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		return writeErr(c, err)
	}

	id, err := h.Shows.Create(ctx, model.Show{
		VenueID:     req.VenueID,
		ShowName:    strings.TrimSpace(req.ShowName),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   uid,
	})
	if err != nil {
		return writeErr(c, err)
	}
	s, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

// List returns shows, optionally filtered with ?venue_id=.
func (h *ShowHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	var venueID *uint64
	if q := c.QueryParam("venue_id"); q != "" {
		id, err := pathIDFromString(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue_id"})
		}
		venueID = &id
	}

	shows, err := h.Shows.List(ctx, venueID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, shows)
}

// Get returns one show.
func (h *ShowHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	s, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Update rewrites a show (admin).
func (h *ShowHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var req showReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		return writeErr(c, err)
	}
	if err := h.Shows.Update(ctx, model.Show{
		ID:          id,
		VenueID:     req.VenueID,
		ShowName:    strings.TrimSpace(req.ShowName),
		Description: strings.TrimSpace(req.Description),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}); err != nil {
		return writeErr(c, err)
	}
	s, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Delete removes a show without performances (admin); 409 otherwise.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Shows.Delete(ctx, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "show deleted"})
}
