package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// TicketRepo provides persistence for tickets. Tickets are only ever
// soft-deleted: cancellation flips the cancelled flag, which in turn
// releases any reserved seats through the occupancy query.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrBookingNotFound = errors.New("no tickets found for booking reference")
)

const ticketCols = "t.id, t.performance_id, t.user_id, t.qr_code, t.qr_image_url, t.start_time, t.end_time, " +
	"t.is_checked_in, t.cancelled, t.price_cents, t.quantity, t.ticket_price_id, " +
	"t.created_by, t.updated_by, t.created_at, t.updated_at"

func scanTicket(sc interface{ Scan(...any) error }) (model.Ticket, error) {
	var t model.Ticket
	err := sc.Scan(&t.ID, &t.PerformanceID, &t.UserID, &t.QRCode, &t.QRImageURL, &t.StartTime, &t.EndTime,
		&t.IsCheckedIn, &t.Cancelled, &t.PriceCents, &t.Quantity, &t.TicketPriceID,
		&t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTicketNotFound
	}
	return t, err
}

// CreateTx inserts a ticket inside an existing transaction and returns
// its ID. The booking path mints every ticket of a booking in one
// transaction so a failed seat reservation rolls back the whole lot.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t model.Ticket) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (performance_id, user_id, qr_code, qr_image_url, start_time, end_time,
		 price_cents, quantity, ticket_price_id, created_by) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		t.PerformanceID, t.UserID, t.QRCode, t.QRImageURL, t.StartTime, t.EndTime,
		t.PriceCents, t.Quantity, t.TicketPriceID, t.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a ticket by id.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	return scanTicket(r.DB.QueryRowContext(ctx,
		"SELECT "+ticketCols+" FROM tickets t WHERE t.id=? LIMIT 1", id))
}

func (r *TicketRepo) queryTickets(ctx context.Context, q string, args ...any) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListByUser returns all of a user's tickets, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketCols+" FROM tickets t WHERE t.user_id=? ORDER BY t.created_at DESC, t.id DESC", userID)
}

// ListByPerformance returns every ticket issued for a performance.
func (r *TicketRepo) ListByPerformance(ctx context.Context, performanceID uint64) ([]model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketCols+" FROM tickets t WHERE t.performance_id=? ORDER BY t.id", performanceID)
}

// ListAll returns every ticket ordered by booking reference so the
// caller can fold consecutive rows into per-booking groups.
func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	return r.queryTickets(ctx,
		"SELECT "+ticketCols+" FROM tickets t ORDER BY t.qr_code, t.id")
}

// ListByBookingRef returns the tickets minted under one booking
// reference. An empty result maps to ErrBookingNotFound so bulk
// operations on unknown references fail loudly.
func (r *TicketRepo) ListByBookingRef(ctx context.Context, ref string) ([]model.Ticket, error) {
	ts, err := r.queryTickets(ctx,
		"SELECT "+ticketCols+" FROM tickets t WHERE t.qr_code=? ORDER BY t.id", ref)
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, ErrBookingNotFound
	}
	return ts, nil
}

// BookingRefExists reports whether any ticket already carries the
// reference. The generator retries on collision.
func (r *TicketRepo) BookingRefExists(ctx context.Context, ref string) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE qr_code=?", ref).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountActiveByPerformance returns the number of non-cancelled tickets
// for a performance, weighting each ticket by its recorded quantity.
func (r *TicketRepo) CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(COALESCE(quantity,1)),0) FROM tickets WHERE performance_id=? AND cancelled=FALSE",
		performanceID).Scan(&n)
	return n, err
}

// guardPerformance rejects mutations against tickets whose performance
// has been cancelled.
func (r *TicketRepo) guardPerformance(ctx context.Context, ticketID uint64) error {
	var status string
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.status FROM tickets t JOIN performances p ON p.id = t.performance_id WHERE t.id=?`,
		ticketID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTicketNotFound
	}
	if err != nil {
		return err
	}
	if status == model.PerformanceCancelled {
		return ErrPerformanceCancelled
	}
	return nil
}

// CheckIn marks a ticket as checked in. Checking in twice is a no-op;
// cancelled tickets cannot be checked in.
func (r *TicketRepo) CheckIn(ctx context.Context, id, updatedBy uint64) (model.Ticket, error) {
	if err := r.guardPerformance(ctx, id); err != nil {
		return model.Ticket{}, err
	}
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Ticket{}, err
	}
	if t.Cancelled {
		return model.Ticket{}, ErrConflict
	}
	if t.IsCheckedIn {
		return t, nil
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET is_checked_in=TRUE, updated_by=? WHERE id=?", updatedBy, id); err != nil {
		return model.Ticket{}, err
	}
	return r.GetByID(ctx, id)
}

// Cancel soft-deletes a ticket. Already-cancelled tickets are left
// untouched; the seats it held become free through the occupancy query.
func (r *TicketRepo) Cancel(ctx context.Context, id, updatedBy uint64) error {
	if err := r.guardPerformance(ctx, id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET cancelled=TRUE, updated_by=? WHERE id=? AND cancelled=FALSE", updatedBy, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish missing from already-cancelled.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CheckInByBookingRef checks in every non-cancelled ticket of a
// booking. Unknown references return ErrBookingNotFound.
func (r *TicketRepo) CheckInByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error) {
	ts, err := r.ListByBookingRef(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := r.guardPerformance(ctx, ts[0].ID); err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET is_checked_in=TRUE, updated_by=? WHERE qr_code=? AND cancelled=FALSE",
		updatedBy, ref)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// UpdateByBookingRef applies the supplied flags to every ticket of a
// booking. A nil flag leaves the column untouched, so a partial update
// cannot silently revert the other flag. Unknown references return
// ErrBookingNotFound.
func (r *TicketRepo) UpdateByBookingRef(ctx context.Context, ref string, isCheckedIn, cancelled *bool, updatedBy uint64) (int, error) {
	ts, err := r.ListByBookingRef(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := r.guardPerformance(ctx, ts[0].ID); err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET is_checked_in=COALESCE(?, is_checked_in), cancelled=COALESCE(?, cancelled), updated_by=? WHERE qr_code=?",
		isCheckedIn, cancelled, updatedBy, ref)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// CancelByBookingRef cancels every ticket of a booking. Unknown
// references return ErrBookingNotFound.
func (r *TicketRepo) CancelByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error) {
	ts, err := r.ListByBookingRef(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := r.guardPerformance(ctx, ts[0].ID); err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET cancelled=TRUE, updated_by=? WHERE qr_code=? AND cancelled=FALSE",
		updatedBy, ref)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
