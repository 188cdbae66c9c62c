package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// PerformanceRepo provides persistence for performances, including the
// venue-level schedule conflict probe used before create and update.
type PerformanceRepo struct{ DB *sql.DB }

func NewPerformanceRepo(db *sql.DB) *PerformanceRepo { return &PerformanceRepo{DB: db} }

var ErrPerformanceNotFound = errors.New("performance not found")

const perfCols = "id, show_id, performance_date, start_time, end_time, seating_type, status, sold_out, created_by, updated_by, created_at, updated_at"

func scanPerformance(sc interface{ Scan(...any) error }) (model.Performance, error) {
	var p model.Performance
	err := sc.Scan(&p.ID, &p.ShowID, &p.PerformanceDate, &p.StartTime, &p.EndTime,
		&p.SeatingType, &p.Status, &p.SoldOut, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrPerformanceNotFound
	}
	return p, err
}

// Create inserts a performance and returns its ID.
func (r *PerformanceRepo) Create(ctx context.Context, p model.Performance) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO performances (show_id, performance_date, start_time, end_time, seating_type, status, sold_out, created_by) VALUES (?,?,?,?,?,?,?,?)",
		p.ShowID, p.PerformanceDate, p.StartTime, p.EndTime, p.SeatingType, p.Status, p.SoldOut, p.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a performance by id.
func (r *PerformanceRepo) GetByID(ctx context.Context, id uint64) (model.Performance, error) {
	return scanPerformance(r.DB.QueryRowContext(ctx,
		"SELECT "+perfCols+" FROM performances WHERE id=? LIMIT 1", id))
}

// List returns performances, optionally filtered by show.
func (r *PerformanceRepo) List(ctx context.Context, showID *uint64) ([]model.Performance, error) {
	q := "SELECT " + perfCols + " FROM performances"
	args := []any{}
	if showID != nil {
		q += " WHERE show_id=?"
		args = append(args, *showID)
	}
	q += " ORDER BY performance_date, start_time, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Performance, 0)
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites a performance's mutable fields.
func (r *PerformanceRepo) Update(ctx context.Context, p model.Performance) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE performances SET performance_date=?, start_time=?, end_time=?, seating_type=?, status=?, sold_out=?, updated_by=? WHERE id=?",
		p.PerformanceDate, p.StartTime, p.EndTime, p.SeatingType, p.Status, p.SoldOut, p.UpdatedBy, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM performances WHERE id=?", p.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrPerformanceNotFound
		}
	}
	return nil
}

// HasConflicting reports whether another scheduled performance at the
// same venue overlaps the candidate [start, end) window on the given
// date. The venue is resolved through the shows table so performances
// of different shows sharing one stage still collide. excludeID, when
// non-nil, skips the row being updated.
func (r *PerformanceRepo) HasConflicting(ctx context.Context, showID uint64, date, start, end string, excludeID *uint64) (bool, error) {
	q := `SELECT COUNT(*)
		FROM performances p
		JOIN shows s  ON s.id = p.show_id
		JOIN shows me ON me.id = ?
		WHERE s.venue_id = me.venue_id
		  AND p.performance_date = ?
		  AND p.status = ?
		  AND ? < p.end_time
		  AND ? > p.start_time`
	args := []any{showID, date, model.PerformanceScheduled, start, end}
	if excludeID != nil {
		q += " AND p.id <> ?"
		args = append(args, *excludeID)
	}
	var n int
	if err := r.DB.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// TicketCount returns the number of non-cancelled tickets issued
// against the performance.
func (r *PerformanceRepo) TicketCount(ctx context.Context, id uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tickets WHERE performance_id=? AND cancelled=FALSE", id).Scan(&n)
	return n, err
}

// CancelCascade soft-cancels a performance together with every ticket
// issued against it, atomically. Used instead of a hard delete when
// tickets have already been sold.
func (r *PerformanceRepo) CancelCascade(ctx context.Context, id uint64, updatedBy uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE performances SET status=?, updated_by=? WHERE id=?",
		model.PerformanceCancelled, updatedBy, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM performances WHERE id=?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrPerformanceNotFound
		}
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE tickets SET cancelled=TRUE, updated_by=? WHERE performance_id=? AND cancelled=FALSE",
		updatedBy, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete hard-deletes a performance and its prices. Only valid when no
// tickets were ever issued; callers check TicketCount first and fall
// back to CancelCascade otherwise.
func (r *PerformanceRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ticket_prices WHERE performance_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM performances WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPerformanceNotFound
	}
	return tx.Commit()
}
