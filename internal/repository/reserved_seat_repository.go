package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// ReservedSeatRepo provides persistence for seat occupancy records.
// A seat is considered taken when a reservation row on the same
// (plan, row, seat) links to a non-cancelled ticket for the same
// performance. Cancelled tickets release their seats implicitly.
type ReservedSeatRepo struct{ DB *sql.DB }

func NewReservedSeatRepo(db *sql.DB) *ReservedSeatRepo { return &ReservedSeatRepo{DB: db} }

const seatTakenQuery = `SELECT COUNT(*)
	FROM reserved_seats rs
	JOIN tickets t ON t.id = rs.ticket_id
	WHERE rs.seating_plan_id = ?
	  AND rs.row_number = ?
	  AND rs.seat_number = ?
	  AND t.performance_id = ?
	  AND t.cancelled = FALSE`

// IsTaken reports whether the seat is held by an active ticket for the
// performance. Read-only probe; the booking path uses IsTakenTx so the
// check and insert share one transaction.
func (r *ReservedSeatRepo) IsTaken(ctx context.Context, planID uint64, row, seat int, performanceID uint64) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, seatTakenQuery,
		planID, row, seat, performanceID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// IsTakenTx is IsTaken inside a transaction, locking the matched rows
// with FOR UPDATE so two concurrent bookings of the same seat cannot
// both observe it free.
func (r *ReservedSeatRepo) IsTakenTx(ctx context.Context, tx *sql.Tx, planID uint64, row, seat int, performanceID uint64) (bool, error) {
	var n int
	if err := tx.QueryRowContext(ctx, seatTakenQuery+" FOR UPDATE",
		planID, row, seat, performanceID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a reservation row linked to a ticket inside an
// existing transaction.
func (r *ReservedSeatRepo) CreateTx(ctx context.Context, tx *sql.Tx, s model.ReservedSeat) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO reserved_seats (seating_plan_id, ticket_id, row_number, seat_number) VALUES (?,?,?,?)",
		s.SeatingPlanID, s.TicketID, s.RowNumber, s.SeatNumber)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByTicketIDs returns reservations for a set of tickets, keyed by
// ticket ID. Used to hydrate ticket detail responses in one query.
func (r *ReservedSeatRepo) ListByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64][]model.ReservedSeat, error) {
	out := make(map[uint64][]model.ReservedSeat)
	if len(ticketIDs) == 0 {
		return out, nil
	}
	q := "SELECT id, seating_plan_id, ticket_id, row_number, seat_number, created_at FROM reserved_seats WHERE ticket_id IN (?"
	args := []any{ticketIDs[0]}
	for _, id := range ticketIDs[1:] {
		q += ",?"
		args = append(args, id)
	}
	q += ") ORDER BY row_number, seat_number"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.ReservedSeat
		if err := rows.Scan(&s.ID, &s.SeatingPlanID, &s.TicketID, &s.RowNumber, &s.SeatNumber, &s.CreatedAt); err != nil {
			return nil, err
		}
		if s.TicketID != nil {
			out[*s.TicketID] = append(out[*s.TicketID], s)
		}
	}
	return out, rows.Err()
}

// CountActiveByPerformance returns the number of seats currently held
// by non-cancelled tickets of a performance. Feeds the remaining-seat
// figure on performance detail responses.
func (r *ReservedSeatRepo) CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM reserved_seats rs
		 JOIN tickets t ON t.id = rs.ticket_id
		 WHERE t.performance_id = ? AND t.cancelled = FALSE`,
		performanceID).Scan(&n)
	return n, err
}
