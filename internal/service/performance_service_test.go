package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

type perfMocks struct {
	perfs   *MockPerformanceAdminStore
	shows   *MockShowStore
	venues  *MockVenueStore
	prices  *MockPriceStore
	tickets *MockTicketStore
	seats   *MockSeatStore
}

func newPerformanceFixture() (*PerformanceService, *perfMocks) {
	m := &perfMocks{
		perfs:   new(MockPerformanceAdminStore),
		shows:   new(MockShowStore),
		venues:  new(MockVenueStore),
		prices:  new(MockPriceStore),
		tickets: new(MockTicketStore),
		seats:   new(MockSeatStore),
	}
	svc := NewPerformanceService(m.perfs, m.shows, m.venues, m.prices, m.tickets, m.seats)
	return svc, m
}

func juneShow() model.Show {
	return model.Show{ID: 3, VenueID: 5, ShowName: "Hamlet", StartDate: "2026-06-01", EndDate: "2026-06-30"}
}

func validInput() PerformanceInput {
	return PerformanceInput{
		ShowID:          3,
		PerformanceDate: "2026-06-10",
		StartTime:       "19:00:00",
		EndTime:         "21:30:00",
		SeatingType:     model.SeatingCustomised,
		Prices:          []PriceInput{{TicketTypeID: 1, PriceCents: 5000}},
	}
}

func TestCreatePerformance_Valid(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()
	in := validInput()

	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.perfs.On("HasConflicting", ctx, uint64(3), "2026-06-10", "19:00:00", "21:30:00", (*uint64)(nil)).
		Return(false, nil).Once()
	m.perfs.On("Create", ctx, mock.MatchedBy(func(p model.Performance) bool {
		return p.ShowID == 3 && p.Status == model.PerformanceScheduled && p.CreatedBy == 2
	})).Return(uint64(77), nil).Once()
	m.prices.On("Upsert", ctx, model.TicketPrice{PerformanceID: 77, TicketTypeID: 1, PriceCents: 5000}).
		Return(nil).Once()

	id, err := svc.Create(ctx, in, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint64(77), id)
	m.perfs.AssertExpectations(t)
	m.prices.AssertExpectations(t)
}

func TestCreatePerformance_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PerformanceInput)
		wantErr error
	}{
		{
			name:    "unknown seating type",
			mutate:  func(in *PerformanceInput) { in.SeatingType = 7 },
			wantErr: ErrBadSeatingType,
		},
		{
			name:    "malformed date",
			mutate:  func(in *PerformanceInput) { in.PerformanceDate = "10/06/2026" },
			wantErr: ErrBadPerformanceDate,
		},
		{
			name: "end before start",
			mutate: func(in *PerformanceInput) {
				in.StartTime = "21:30:00"
				in.EndTime = "19:00:00"
			},
			wantErr: ErrBadTimeWindow,
		},
		{
			name:    "zero length window",
			mutate:  func(in *PerformanceInput) { in.EndTime = in.StartTime },
			wantErr: ErrBadTimeWindow,
		},
		{
			name:    "date before the show run",
			mutate:  func(in *PerformanceInput) { in.PerformanceDate = "2026-05-31" },
			wantErr: ErrOutsideShowWindow,
		},
		{
			name:    "date after the show run",
			mutate:  func(in *PerformanceInput) { in.PerformanceDate = "2026-07-01" },
			wantErr: ErrOutsideShowWindow,
		},
		{
			name:    "non positive price",
			mutate:  func(in *PerformanceInput) { in.Prices = []PriceInput{{TicketTypeID: 1, PriceCents: 0}} },
			wantErr: ErrBadPrice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newPerformanceFixture()
			ctx := context.Background()
			m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Maybe()

			in := validInput()
			tc.mutate(&in)

			_, err := svc.Create(ctx, in, 2)

			assert.ErrorIs(t, err, tc.wantErr)
			m.perfs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePerformance_ScheduleConflict(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.perfs.On("HasConflicting", ctx, uint64(3), "2026-06-10", "19:00:00", "21:30:00", (*uint64)(nil)).
		Return(true, nil).Once()

	_, err := svc.Create(ctx, validInput(), 2)

	assert.ErrorIs(t, err, ErrScheduleConflict)
	m.perfs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePerformance_InactiveSkipsConflictProbe(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	in := validInput()
	in.Status = model.PerformanceInactive

	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.perfs.On("Create", ctx, mock.AnythingOfType("model.Performance")).Return(uint64(78), nil).Once()
	m.prices.On("Upsert", ctx, mock.AnythingOfType("model.TicketPrice")).Return(nil).Once()

	id, err := svc.Create(ctx, in, 2)

	assert.NoError(t, err)
	assert.Equal(t, uint64(78), id)
	m.perfs.AssertNotCalled(t, "HasConflicting",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBatch_SkipsInvalidEntries(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	good := validInput()
	bad := validInput()
	bad.PerformanceDate = "2026-07-15"

	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil)
	m.perfs.On("HasConflicting", ctx, uint64(3), "2026-06-10", "19:00:00", "21:30:00", (*uint64)(nil)).
		Return(false, nil).Once()
	m.perfs.On("Create", ctx, mock.AnythingOfType("model.Performance")).Return(uint64(80), nil).Once()
	m.prices.On("Upsert", ctx, mock.AnythingOfType("model.TicketPrice")).Return(nil).Once()

	out := svc.CreateBatch(ctx, []PerformanceInput{good, bad}, 2)

	assert.Len(t, out, 2)
	assert.False(t, out[0].Skipped)
	assert.Equal(t, uint64(80), out[0].PerformanceID)
	assert.True(t, out[1].Skipped)
	assert.Equal(t, ErrOutsideShowWindow.Error(), out[1].Reason)
}

func TestUpdatePerformance_PrunesOmittedPrices(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()
	id := uint64(77)

	current := model.Performance{ID: id, ShowID: 3, Status: model.PerformanceScheduled}
	m.perfs.On("GetByID", ctx, id).Return(current, nil).Once()
	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.perfs.On("HasConflicting", ctx, uint64(3), "2026-06-10", "19:00:00", "21:30:00", &id).
		Return(false, nil).Once()
	m.perfs.On("Update", ctx, mock.MatchedBy(func(p model.Performance) bool {
		return p.ID == id && p.Status == model.PerformanceScheduled && p.UpdatedBy != nil && *p.UpdatedBy == 2
	})).Return(nil).Once()
	m.prices.On("Upsert", ctx, model.TicketPrice{PerformanceID: id, TicketTypeID: 1, PriceCents: 6000}).
		Return(nil).Once()
	m.prices.On("DeleteForPerformanceExcept", ctx, id, []uint64{1}).Return(nil).Once()

	in := validInput()
	in.Prices = []PriceInput{{TicketTypeID: 1, PriceCents: 6000}}

	err := svc.Update(ctx, id, in, 2)

	assert.NoError(t, err)
	m.prices.AssertExpectations(t)
}

func TestDeletePerformance_WithTicketsCancelsInstead(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	m.perfs.On("TicketCount", ctx, uint64(77)).Return(4, nil).Once()
	m.perfs.On("CancelCascade", ctx, uint64(77), uint64(2)).Return(nil).Once()

	hard, err := svc.Delete(ctx, 77, 2)

	assert.NoError(t, err)
	assert.False(t, hard)
	m.perfs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	m.perfs.AssertExpectations(t)
}

func TestDeletePerformance_WithoutTicketsHardDeletes(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	m.perfs.On("TicketCount", ctx, uint64(77)).Return(0, nil).Once()
	m.perfs.On("Delete", ctx, uint64(77)).Return(nil).Once()

	hard, err := svc.Delete(ctx, 77, 2)

	assert.NoError(t, err)
	assert.True(t, hard)
	m.perfs.AssertNotCalled(t, "CancelCascade", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPerformance_ComputesRemainingCapacity(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	perf := model.Performance{ID: 77, ShowID: 3, Status: model.PerformanceScheduled}
	m.perfs.On("GetByID", ctx, uint64(77)).Return(perf, nil).Once()
	m.prices.On("ListByPerformance", ctx, uint64(77)).
		Return([]model.TicketPrice{{ID: 1, PerformanceID: 77, TicketTypeID: 1, PriceCents: 5000}}, nil).Once()
	m.tickets.On("CountActiveByPerformance", ctx, uint64(77)).Return(120, nil).Once()
	m.seats.On("CountActiveByPerformance", ctx, uint64(77)).Return(30, nil).Once()
	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.venues.On("GetByID", ctx, uint64(5)).Return(venueWithPlan(10, 12), nil).Once()

	detail, err := svc.Get(ctx, 77)

	assert.NoError(t, err)
	assert.Equal(t, 120, detail.TicketsSold)
	assert.Equal(t, 30, detail.SeatsReserved)
	assert.Equal(t, 380, detail.RemainingCapacity)
	assert.Len(t, detail.Prices, 1)
}

func TestGetPerformance_CustomisedCountsReservedSeats(t *testing.T) {
	svc, m := newPerformanceFixture()
	ctx := context.Background()

	perf := model.Performance{ID: 77, ShowID: 3, SeatingType: model.SeatingCustomised, Status: model.PerformanceScheduled}
	m.perfs.On("GetByID", ctx, uint64(77)).Return(perf, nil).Once()
	m.prices.On("ListByPerformance", ctx, uint64(77)).Return([]model.TicketPrice{}, nil).Once()
	m.tickets.On("CountActiveByPerformance", ctx, uint64(77)).Return(120, nil).Once()
	m.seats.On("CountActiveByPerformance", ctx, uint64(77)).Return(30, nil).Once()
	m.shows.On("GetByID", ctx, uint64(3)).Return(juneShow(), nil).Once()
	m.venues.On("GetByID", ctx, uint64(5)).Return(venueWithPlan(10, 12), nil).Once()

	detail, err := svc.Get(ctx, 77)

	assert.NoError(t, err)
	assert.Equal(t, 470, detail.RemainingCapacity)
}
