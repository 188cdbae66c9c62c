package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// VenueHandler covers venue CRUD including the seating plan grid.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

func NewVenueHandler(v *repository.VenueRepo) *VenueHandler {
	return &VenueHandler{Venues: v}
}

type venueReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	MaxCapacity int    `json:"max_capacity"`
	Rows        int    `json:"rows"`
	SeatsPerRow int    `json:"seats_per_row"`
}

// validate enforces the venue invariants, most importantly that the
// seating grid never exceeds the capacity ceiling.
func (r venueReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name required"
	}
	if r.MaxCapacity <= 0 {
		return "max_capacity must be positive"
	}
	if r.Rows < 0 || r.SeatsPerRow < 0 {
		return "rows and seats_per_row must not be negative"
	}
	if r.Rows*r.SeatsPerRow > r.MaxCapacity {
		return "seating plan exceeds venue capacity"
	}
	return ""
}

func (r venueReq) toModel(createdBy uint64) model.Venue {
	return model.Venue{
		Name:        strings.TrimSpace(r.Name),
		Address:     strings.TrimSpace(r.Address),
		MaxCapacity: r.MaxCapacity,
		CreatedBy:   createdBy,
		SeatingPlan: &model.SeatingPlan{Rows: r.Rows, SeatsPerRow: r.SeatsPerRow},
	}
}

// Create adds a venue with its seating plan (admin).
func (h *VenueHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Venues.Create(ctx, req.toModel(uid))
	if err != nil {
		return writeErr(c, err)
	}
	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// List returns all venues.
func (h *VenueHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	venues, err := h.Venues.List(ctx)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, venues)
}

// Get returns one venue with its seating plan.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	v, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Update rewrites a venue and its seating plan (admin).
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	v := req.toModel(0)
	v.ID = id
	if err := h.Venues.Update(ctx, v); err != nil {
		return writeErr(c, err)
	}
	out, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a venue without shows (admin); 409 otherwise.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Venues.Delete(ctx, id); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "venue deleted"})
}
