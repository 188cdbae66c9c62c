package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// VenueRepo provides persistence for venues and their seating plans.
// A venue and its plan are written together inside one transaction so
// that a venue row never exists without its grid.
type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

var ErrVenueNotFound = errors.New("venue not found")

// Create inserts a venue together with its seating plan and returns
// the new venue ID.
func (r *VenueRepo) Create(ctx context.Context, v model.Venue) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO venues (name, address, max_capacity, created_by) VALUES (?,?,?,?)",
		v.Name, v.Address, v.MaxCapacity, v.CreatedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	rows, seats := 0, 0
	if v.SeatingPlan != nil {
		rows, seats = v.SeatingPlan.Rows, v.SeatingPlan.SeatsPerRow
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO seating_plans (venue_id, `rows`, seats_per_row) VALUES (?,?,?)",
		id, rows, seats); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const venueCols = "v.id, v.name, v.address, v.max_capacity, v.created_by, v.created_at, v.updated_at, " +
	"p.id, p.venue_id, p.`rows`, p.seats_per_row, p.created_at, p.updated_at"

const venueFrom = " FROM venues v JOIN seating_plans p ON p.venue_id = v.id "

func scanVenue(sc interface{ Scan(...any) error }) (model.Venue, error) {
	var (
		v    model.Venue
		plan model.SeatingPlan
	)
	err := sc.Scan(&v.ID, &v.Name, &v.Address, &v.MaxCapacity, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt,
		&plan.ID, &plan.VenueID, &plan.Rows, &plan.SeatsPerRow, &plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrVenueNotFound
	}
	if err != nil {
		return v, err
	}
	v.SeatingPlan = &plan
	return v, nil
}

// GetByID fetches a venue with its seating plan.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	return scanVenue(r.DB.QueryRowContext(ctx,
		"SELECT "+venueCols+venueFrom+"WHERE v.id=? LIMIT 1", id))
}

// List returns all venues with their seating plans.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+venueCols+venueFrom+"ORDER BY v.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update rewrites a venue and its seating plan in one transaction.
func (r *VenueRepo) Update(ctx context.Context, v model.Venue) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE venues SET name=?, address=?, max_capacity=? WHERE id=?",
		v.Name, v.Address, v.MaxCapacity, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Row may exist unchanged; verify before reporting not-found.
		var exists int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM venues WHERE id=?", v.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrVenueNotFound
		}
	}
	if v.SeatingPlan != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE seating_plans SET `rows`=?, seats_per_row=? WHERE venue_id=?",
			v.SeatingPlan.Rows, v.SeatingPlan.SeatsPerRow, v.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a venue and its seating plan. Venues hosting shows
// cannot be deleted; the caller receives ErrConflict instead.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var shows int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM shows WHERE venue_id=?", id).Scan(&shows); err != nil {
		return err
	}
	if shows > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM seating_plans WHERE venue_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM venues WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVenueNotFound
	}
	return tx.Commit()
}
