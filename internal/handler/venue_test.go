package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestVenueReqValidate(t *testing.T) {
	cases := []struct {
		name string
		req  venueReq
		want string
	}{
		{
			name: "valid with exact capacity fit",
			req:  venueReq{Name: "Civic Hall", MaxCapacity: 120, Rows: 10, SeatsPerRow: 12},
			want: "",
		},
		{
			name: "valid general admission only",
			req:  venueReq{Name: "Open Field", MaxCapacity: 5000},
			want: "",
		},
		{
			name: "missing name",
			req:  venueReq{Name: "  ", MaxCapacity: 100},
			want: "name required",
		},
		{
			name: "zero capacity",
			req:  venueReq{Name: "Civic Hall"},
			want: "max_capacity must be positive",
		},
		{
			name: "negative grid",
			req:  venueReq{Name: "Civic Hall", MaxCapacity: 100, Rows: -1, SeatsPerRow: 10},
			want: "rows and seats_per_row must not be negative",
		},
		{
			name: "grid larger than capacity",
			req:  venueReq{Name: "Civic Hall", MaxCapacity: 100, Rows: 10, SeatsPerRow: 11},
			want: "seating plan exceeds venue capacity",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.req.validate())
		})
	}
}

func TestVenueCreate_RejectsOversizedPlan(t *testing.T) {
	e := echo.New()
	body := `{"name":"Civic Hall","max_capacity":100,"rows":10,"seats_per_row":11}`
	req := httptest.NewRequest(http.MethodPost, "/v1/venues", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))

	// Validation fires before any storage access.
	h := &VenueHandler{}
	err := h.Create(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "seating plan exceeds venue capacity")
}
