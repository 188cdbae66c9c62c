package service

import (
	"context"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// TicketService covers ticket reads and lifecycle mutations outside
// the booking call: hydration, check-in, cancellation, and the bulk
// operations keyed by booking reference.
type TicketService struct {
	Tickets TicketStore
	Seats   SeatStore
	Perfs   PerformanceStore
	Shows   ShowStore
	Venues  VenueStore
	Users   UserStore
}

func NewTicketService(t TicketStore, s SeatStore, p PerformanceStore, sh ShowStore, v VenueStore, u UserStore) *TicketService {
	return &TicketService{Tickets: t, Seats: s, Perfs: p, Shows: sh, Venues: v, Users: u}
}

// staffRole reports whether the role may act on tickets it does not own.
func staffRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleStaff
}

func ownsTicket(t model.Ticket, callerID uint64) bool {
	return t.UserID == callerID || t.CreatedBy == callerID
}

// hydrate fills in seats plus show/venue/purchaser display fields.
// Lookup failures for display data are tolerated; the core ticket is
// returned regardless.
func (s *TicketService) hydrate(ctx context.Context, tickets []model.Ticket) []model.Ticket {
	if len(tickets) == 0 {
		return tickets
	}
	ids := make([]uint64, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
	}
	seats, err := s.Seats.ListByTicketIDs(ctx, ids)
	if err != nil {
		seats = nil
	}

	// Bookings share one performance, so cache lookups per ID.
	type perfInfo struct {
		date, show, venue string
	}
	perfCache := map[uint64]perfInfo{}
	userCache := map[uint64]model.User{}

	for i := range tickets {
		t := &tickets[i]
		if seats != nil {
			t.ReservedSeats = seats[t.ID]
		}
		if t.ReservedSeats == nil {
			t.ReservedSeats = []model.ReservedSeat{}
		}
		info, ok := perfCache[t.PerformanceID]
		if !ok {
			if perf, err := s.Perfs.GetByID(ctx, t.PerformanceID); err == nil {
				info.date = perf.PerformanceDate
				if show, err := s.Shows.GetByID(ctx, perf.ShowID); err == nil {
					info.show = show.ShowName
					if venue, err := s.Venues.GetByID(ctx, show.VenueID); err == nil {
						info.venue = venue.Name
					}
				}
			}
			perfCache[t.PerformanceID] = info
		}
		t.PerformanceDate = info.date
		t.ShowName = info.show
		t.VenueName = info.venue

		u, ok := userCache[t.UserID]
		if !ok {
			u, _ = s.Users.GetByID(ctx, t.UserID)
			userCache[t.UserID] = u
		}
		t.UserEmail = u.Email
		t.UserName = u.FullName()
	}
	return tickets
}

// Get returns one hydrated ticket. Customers may only read their own.
func (s *TicketService) Get(ctx context.Context, id, callerID uint64, role string) (model.Ticket, error) {
	t, err := s.Tickets.GetByID(ctx, id)
	if err != nil {
		return model.Ticket{}, err
	}
	if !staffRole(role) && !ownsTicket(t, callerID) {
		return model.Ticket{}, repository.ErrForbidden
	}
	return s.hydrate(ctx, []model.Ticket{t})[0], nil
}

// ListMine returns the caller's tickets, hydrated.
func (s *TicketService) ListMine(ctx context.Context, callerID uint64) ([]model.Ticket, error) {
	ts, err := s.Tickets.ListByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, ts), nil
}

// ListForUser returns one user's tickets. Customers may only list
// their own; staff may list anyone's.
func (s *TicketService) ListForUser(ctx context.Context, userID, callerID uint64, role string) ([]model.Ticket, error) {
	if userID != callerID && !staffRole(role) {
		return nil, repository.ErrForbidden
	}
	ts, err := s.Tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, ts), nil
}

// ListByPerformance returns every ticket of a performance. Staff only;
// enforced at the route layer.
func (s *TicketService) ListByPerformance(ctx context.Context, performanceID uint64) ([]model.Ticket, error) {
	ts, err := s.Tickets.ListByPerformance(ctx, performanceID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, ts), nil
}

// ListByBookingRef returns the tickets of one booking. Callers must
// own every returned ticket unless they hold a staff role.
func (s *TicketService) ListByBookingRef(ctx context.Context, ref string, callerID uint64, role string) ([]model.Ticket, error) {
	ts, err := s.Tickets.ListByBookingRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !staffRole(role) {
		for _, t := range ts {
			if !ownsTicket(t, callerID) {
				return nil, repository.ErrForbidden
			}
		}
	}
	return s.hydrate(ctx, ts), nil
}

// CheckIn marks a ticket as used at the door. Re-checking an already
// checked-in ticket succeeds without a second mutation; cancelled
// tickets are rejected.
func (s *TicketService) CheckIn(ctx context.Context, id, staffID uint64) (model.Ticket, error) {
	t, err := s.Tickets.CheckIn(ctx, id, staffID)
	if err != nil {
		return model.Ticket{}, err
	}
	return s.hydrate(ctx, []model.Ticket{t})[0], nil
}

// Cancel soft-deletes one ticket. Owners may cancel their own tickets;
// staff may cancel any.
func (s *TicketService) Cancel(ctx context.Context, id, callerID uint64, role string) error {
	t, err := s.Tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !staffRole(role) && !ownsTicket(t, callerID) {
		return repository.ErrForbidden
	}
	return s.Tickets.Cancel(ctx, id, callerID)
}

// CheckInBooking bulk check-ins every ticket of a booking reference.
func (s *TicketService) CheckInBooking(ctx context.Context, ref string, staffID uint64) (int, error) {
	return s.Tickets.CheckInByBookingRef(ctx, ref, staffID)
}

// UpdateBooking applies check-in and cancellation flags to every
// ticket of a booking reference. A nil flag leaves that column alone;
// with neither flag supplied the call degrades to a bulk check-in,
// which skips cancelled tickets.
func (s *TicketService) UpdateBooking(ctx context.Context, ref string, isCheckedIn, cancelled *bool, staffID uint64) (int, error) {
	if isCheckedIn == nil && cancelled == nil {
		return s.CheckInBooking(ctx, ref, staffID)
	}
	return s.Tickets.UpdateByBookingRef(ctx, ref, isCheckedIn, cancelled, staffID)
}

// BookingGroup is one booking reference together with its tickets,
// produced by the staff overview listing.
type BookingGroup struct {
	BookingReference string         `json:"booking_reference"`
	Tickets          []model.Ticket `json:"tickets"`
}

// ListGrouped folds every ticket in the system into per-booking
// groups ordered by reference. Staff only; enforced at the route
// layer.
func (s *TicketService) ListGrouped(ctx context.Context) ([]BookingGroup, error) {
	ts, err := s.Tickets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ts = s.hydrate(ctx, ts)

	groups := make([]BookingGroup, 0)
	for _, t := range ts {
		if n := len(groups); n == 0 || groups[n-1].BookingReference != t.QRCode {
			groups = append(groups, BookingGroup{BookingReference: t.QRCode})
		}
		g := &groups[len(groups)-1]
		g.Tickets = append(g.Tickets, t)
	}
	return groups, nil
}

// CancelBooking bulk-cancels every ticket of a booking reference.
func (s *TicketService) CancelBooking(ctx context.Context, ref string, staffID uint64) (int, error) {
	return s.Tickets.CancelByBookingRef(ctx, ref, staffID)
}
