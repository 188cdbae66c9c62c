// Package service holds the business workflows between the HTTP
// handlers and the repositories: booking orchestration, ticket
// issuance and lifecycle, performance scheduling, and confirmation
// delivery. Collaborators are injected as narrow interfaces so tests
// can substitute them without a DI container.
package service

import (
	"context"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// PerformanceStore is the slice of the performance repository the
// services read from.
type PerformanceStore interface {
	GetByID(ctx context.Context, id uint64) (model.Performance, error)
}

// ShowStore resolves shows, primarily to reach their venue.
type ShowStore interface {
	GetByID(ctx context.Context, id uint64) (model.Show, error)
}

// VenueStore resolves venues and their seating plans.
type VenueStore interface {
	GetByID(ctx context.Context, id uint64) (model.Venue, error)
}

// UserStore is the identity collaborator: lookup by email plus
// register, as used by the ticket issuance path.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Create(ctx context.Context, u model.User, password string, cost int) (uint64, error)
}

// TicketStore is the ticket repository surface consumed by the
// booking, ticket and confirmation services.
type TicketStore interface {
	GetByID(ctx context.Context, id uint64) (model.Ticket, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error)
	ListByPerformance(ctx context.Context, performanceID uint64) ([]model.Ticket, error)
	ListByBookingRef(ctx context.Context, ref string) ([]model.Ticket, error)
	ListAll(ctx context.Context) ([]model.Ticket, error)
	BookingRefExists(ctx context.Context, ref string) (bool, error)
	CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error)
	CheckIn(ctx context.Context, id, updatedBy uint64) (model.Ticket, error)
	Cancel(ctx context.Context, id, updatedBy uint64) error
	CheckInByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error)
	CancelByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error)
	UpdateByBookingRef(ctx context.Context, ref string, isCheckedIn, cancelled *bool, updatedBy uint64) (int, error)
}

// SeatStore is the read side of the seat ledger used outside the
// booking transaction.
type SeatStore interface {
	IsTaken(ctx context.Context, planID uint64, row, seat int, performanceID uint64) (bool, error)
	ListByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64][]model.ReservedSeat, error)
	CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error)
}

// PriceStore is the ticket price repository surface.
type PriceStore interface {
	GetByID(ctx context.Context, id uint64) (model.TicketPrice, error)
	ListByPerformance(ctx context.Context, performanceID uint64) ([]model.TicketPrice, error)
	Upsert(ctx context.Context, p model.TicketPrice) error
	DeleteForPerformanceExcept(ctx context.Context, performanceID uint64, keep []uint64) error
}

// Mailer is the outbound mail channel. Failures from it are always
// treated as best-effort by callers.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
