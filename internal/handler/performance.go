package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/service"
)

// PerformanceHandler covers performance scheduling endpoints.
type PerformanceHandler struct {
	Perfs *service.PerformanceService
}

func NewPerformanceHandler(p *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{Perfs: p}
}

// Create schedules one performance (admin/staff). Overlaps with an
// existing scheduled performance at the same venue are rejected.
func (h *PerformanceHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req service.PerformanceInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	id, err := h.Perfs.Create(ctx, req, uid)
	if err != nil {
		return writeErr(c, err)
	}
	detail, err := h.Perfs.Get(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// CreateBatch schedules a run of performances, skipping entries that
// fail validation and reporting the reason per entry.
func (h *PerformanceHandler) CreateBatch(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var reqs []service.PerformanceInput
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty batch"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	out := h.Perfs.CreateBatch(ctx, reqs, uid)
	created := 0
	for _, o := range out {
		if !o.Skipped {
			created++
		}
	}
	if created == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "no performances could be scheduled",
			"results": out,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"results": out})
}

// List returns performances, optionally filtered with ?show_id=.
func (h *PerformanceHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	var showID *uint64
	if q := c.QueryParam("show_id"); q != "" {
		id, err := pathIDFromString(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_id"})
		}
		showID = &id
	}

	perfs, err := h.Perfs.List(ctx, showID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, perfs)
}

// Get returns one performance with prices and availability.
func (h *PerformanceHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	detail, err := h.Perfs.Get(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update rewrites a performance and reconciles its prices
// (admin/staff).
func (h *PerformanceHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}
	var req service.PerformanceInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Perfs.Update(ctx, id, req, uid); err != nil {
		return writeErr(c, err)
	}
	detail, err := h.Perfs.Get(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Delete removes a performance (admin/staff). With tickets sold the
// row is cancelled instead and its tickets cascade-cancelled.
func (h *PerformanceHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid performance id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	hard, err := h.Perfs.Delete(ctx, id, uid)
	if err != nil {
		return writeErr(c, err)
	}
	if hard {
		return c.JSON(http.StatusOK, echo.Map{"message": "performance deleted"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "performance cancelled, tickets cancelled"})
}
