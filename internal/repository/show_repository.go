package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// ShowRepo provides persistence for shows.
type ShowRepo struct{ DB *sql.DB }

func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{DB: db} }

var ErrShowNotFound = errors.New("show not found")

const showCols = "id, venue_id, show_name, description, start_date, end_date, created_by, created_at, updated_at"

func scanShow(sc interface{ Scan(...any) error }) (model.Show, error) {
	var s model.Show
	err := sc.Scan(&s.ID, &s.VenueID, &s.ShowName, &s.Description,
		&s.StartDate, &s.EndDate, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrShowNotFound
	}
	return s, err
}

// Create inserts a show and returns its ID.
func (r *ShowRepo) Create(ctx context.Context, s model.Show) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO shows (venue_id, show_name, description, start_date, end_date, created_by) VALUES (?,?,?,?,?,?)",
		s.VenueID, s.ShowName, s.Description, s.StartDate, s.EndDate, s.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a show by id.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (model.Show, error) {
	return scanShow(r.DB.QueryRowContext(ctx,
		"SELECT "+showCols+" FROM shows WHERE id=? LIMIT 1", id))
}

// List returns all shows, optionally filtered by venue.
func (r *ShowRepo) List(ctx context.Context, venueID *uint64) ([]model.Show, error) {
	q := "SELECT " + showCols + " FROM shows"
	args := []any{}
	if venueID != nil {
		q += " WHERE venue_id=?"
		args = append(args, *venueID)
	}
	q += " ORDER BY start_date, id"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Show, 0)
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites a show's mutable fields.
func (r *ShowRepo) Update(ctx context.Context, s model.Show) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE shows SET venue_id=?, show_name=?, description=?, start_date=?, end_date=? WHERE id=?",
		s.VenueID, s.ShowName, s.Description, s.StartDate, s.EndDate, s.ID)
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
			"SELECT COUNT(*) FROM shows WHERE id=?", s.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrShowNotFound
		}
	}
	return nil
}

// Delete removes a show. Shows that still own performances cannot be
// deleted; the caller receives ErrConflict instead.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	var perfs int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM performances WHERE show_id=?", id).Scan(&perfs); err != nil {
		return err
	}
	if perfs > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM shows WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShowNotFound
	}
	return nil
}
