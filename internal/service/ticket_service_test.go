package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

type ticketMocks struct {
	tickets *MockTicketStore
	seats   *MockSeatStore
	perfs   *MockPerformanceStore
	shows   *MockShowStore
	venues  *MockVenueStore
	users   *MockUserStore
}

func newTicketFixture() (*TicketService, *ticketMocks) {
	m := &ticketMocks{
		tickets: new(MockTicketStore),
		seats:   new(MockSeatStore),
		perfs:   new(MockPerformanceStore),
		shows:   new(MockShowStore),
		venues:  new(MockVenueStore),
		users:   new(MockUserStore),
	}
	svc := NewTicketService(m.tickets, m.seats, m.perfs, m.shows, m.venues, m.users)
	return svc, m
}

// expectHydration wires the display-field lookups for one ticket.
func expectHydration(m *ticketMocks, ctx context.Context, ticketIDs []uint64, perfID, userID uint64) {
	m.seats.On("ListByTicketIDs", ctx, ticketIDs).
		Return(map[uint64][]model.ReservedSeat{}, nil).Once()
	m.perfs.On("GetByID", ctx, perfID).
		Return(model.Performance{ID: perfID, ShowID: 3, PerformanceDate: "2026-06-10"}, nil).Once()
	m.shows.On("GetByID", ctx, uint64(3)).
		Return(model.Show{ID: 3, VenueID: 5, ShowName: "Hamlet"}, nil).Once()
	m.venues.On("GetByID", ctx, uint64(5)).
		Return(model.Venue{ID: 5, Name: "Civic Hall"}, nil).Once()
	m.users.On("GetByID", ctx, userID).
		Return(model.User{ID: userID, Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}, nil).Once()
}

func TestGetTicket_OwnerSeesHydratedTicket(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, PerformanceID: 11, UserID: 7}, nil).Once()
	expectHydration(m, ctx, []uint64{101}, 11, 7)

	got, err := svc.Get(ctx, 101, 7, model.RoleCustomer)

	assert.NoError(t, err)
	assert.Equal(t, "Hamlet", got.ShowName)
	assert.Equal(t, "Civic Hall", got.VenueName)
	assert.Equal(t, "2026-06-10", got.PerformanceDate)
	assert.Equal(t, "jane@example.com", got.UserEmail)
	assert.Equal(t, "Jane Doe", got.UserName)
	assert.NotNil(t, got.ReservedSeats)
}

func TestGetTicket_StrangerForbidden(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, PerformanceID: 11, UserID: 7, CreatedBy: 7}, nil).Once()

	_, err := svc.Get(ctx, 101, 8, model.RoleCustomer)

	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestGetTicket_StaffBypassesOwnership(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, PerformanceID: 11, UserID: 7}, nil).Once()
	expectHydration(m, ctx, []uint64{101}, 11, 7)

	_, err := svc.Get(ctx, 101, 99, model.RoleStaff)

	assert.NoError(t, err)
}

func TestGetTicket_BookerCountsAsOwner(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	// Booked by 8 on behalf of purchaser 7; the booker may still read it.
	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, PerformanceID: 11, UserID: 7, CreatedBy: 8}, nil).Once()
	expectHydration(m, ctx, []uint64{101}, 11, 7)

	_, err := svc.Get(ctx, 101, 8, model.RoleCustomer)

	assert.NoError(t, err)
}

func TestListByBookingRef_OwnershipCoversWholeBooking(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	booking := []model.Ticket{
		{ID: 101, PerformanceID: 11, UserID: 7, CreatedBy: 7},
		{ID: 102, PerformanceID: 11, UserID: 9, CreatedBy: 9},
	}
	m.tickets.On("ListByBookingRef", ctx, "BK20260314ABCDEF").Return(booking, nil).Once()

	_, err := svc.ListByBookingRef(ctx, "BK20260314ABCDEF", 7, model.RoleCustomer)

	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestListByBookingRef_UnknownReference(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("ListByBookingRef", ctx, "BK20260314FFFFFF").
		Return(nil, repository.ErrBookingNotFound).Once()

	_, err := svc.ListByBookingRef(ctx, "BK20260314FFFFFF", 7, model.RoleAdmin)

	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestListMine_HydratesSeats(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	mine := []model.Ticket{{ID: 101, PerformanceID: 11, UserID: 7}}
	m.tickets.On("ListByUser", ctx, uint64(7)).Return(mine, nil).Once()
	m.seats.On("ListByTicketIDs", ctx, []uint64{101}).
		Return(map[uint64][]model.ReservedSeat{
			101: {{ID: 1, RowNumber: 2, SeatNumber: 3}},
		}, nil).Once()
	m.perfs.On("GetByID", ctx, uint64(11)).
		Return(model.Performance{ID: 11, ShowID: 3, PerformanceDate: "2026-06-10"}, nil).Once()
	m.shows.On("GetByID", ctx, uint64(3)).Return(model.Show{ID: 3, VenueID: 5}, nil).Once()
	m.venues.On("GetByID", ctx, uint64(5)).Return(model.Venue{ID: 5}, nil).Once()
	m.users.On("GetByID", ctx, uint64(7)).Return(model.User{ID: 7}, nil).Once()

	got, err := svc.ListMine(ctx, 7)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Len(t, got[0].ReservedSeats, 1)
	assert.Equal(t, 2, got[0].ReservedSeats[0].RowNumber)
}

func TestListForUser_CustomerCannotListOthers(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	_, err := svc.ListForUser(ctx, 9, 7, model.RoleCustomer)

	assert.ErrorIs(t, err, repository.ErrForbidden)
	m.tickets.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestListForUser_StaffListsAnyone(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("ListByUser", ctx, uint64(9)).Return([]model.Ticket{}, nil).Once()

	got, err := svc.ListForUser(ctx, 9, 2, model.RoleStaff)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestCancelTicket_OwnerAllowed(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, UserID: 7}, nil).Once()
	m.tickets.On("Cancel", ctx, uint64(101), uint64(7)).Return(nil).Once()

	err := svc.Cancel(ctx, 101, 7, model.RoleCustomer)

	assert.NoError(t, err)
	m.tickets.AssertExpectations(t)
}

func TestCancelTicket_StrangerForbidden(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("GetByID", ctx, uint64(101)).
		Return(model.Ticket{ID: 101, UserID: 7, CreatedBy: 7}, nil).Once()

	err := svc.Cancel(ctx, 101, 8, model.RoleCustomer)

	assert.ErrorIs(t, err, repository.ErrForbidden)
	m.tickets.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckInBooking_ReportsCount(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("CheckInByBookingRef", ctx, "BK20260314ABCDEF", uint64(2)).Return(3, nil).Once()

	n, err := svc.CheckInBooking(ctx, "BK20260314ABCDEF", 2)

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestUpdateBooking_NoFlagsDefaultsToCheckIn(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("CheckInByBookingRef", ctx, "BK20260314ABCDEF", uint64(2)).Return(3, nil).Once()

	n, err := svc.UpdateBooking(ctx, "BK20260314ABCDEF", nil, nil, 2)

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	m.tickets.AssertNotCalled(t, "UpdateByBookingRef",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBooking_AppliesSuppliedFlags(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()
	checkedIn, cancelled := true, false

	m.tickets.On("UpdateByBookingRef", ctx, "BK20260314ABCDEF", &checkedIn, &cancelled, uint64(2)).
		Return(4, nil).Once()

	n, err := svc.UpdateBooking(ctx, "BK20260314ABCDEF", &checkedIn, &cancelled, 2)

	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	m.tickets.AssertNotCalled(t, "CheckInByBookingRef", mock.Anything, mock.Anything, mock.Anything)
}

func TestListGrouped_FoldsConsecutiveReferences(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	all := []model.Ticket{
		{ID: 101, PerformanceID: 11, UserID: 7, QRCode: "BK20260314ABCDEF"},
		{ID: 102, PerformanceID: 11, UserID: 7, QRCode: "BK20260314ABCDEF"},
		{ID: 103, PerformanceID: 11, UserID: 7, QRCode: "BK20260315123ABC"},
	}
	m.tickets.On("ListAll", ctx).Return(all, nil).Once()
	expectHydration(m, ctx, []uint64{101, 102, 103}, 11, 7)

	groups, err := svc.ListGrouped(ctx)

	assert.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "BK20260314ABCDEF", groups[0].BookingReference)
	assert.Len(t, groups[0].Tickets, 2)
	assert.Equal(t, "BK20260315123ABC", groups[1].BookingReference)
	assert.Len(t, groups[1].Tickets, 1)
	assert.Equal(t, "Hamlet", groups[0].Tickets[0].ShowName)
}

func TestListGrouped_EmptySystem(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("ListAll", ctx).Return([]model.Ticket{}, nil).Once()

	groups, err := svc.ListGrouped(ctx)

	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCancelBooking_PropagatesNotFound(t *testing.T) {
	svc, m := newTicketFixture()
	ctx := context.Background()

	m.tickets.On("CancelByBookingRef", ctx, "BK20260314FFFFFF", uint64(2)).
		Return(0, repository.ErrBookingNotFound).Once()

	_, err := svc.CancelBooking(ctx, "BK20260314FFFFFF", 2)

	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}
