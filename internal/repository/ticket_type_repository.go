package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// TicketTypeRepo provides persistence for the ticket type lookup table.
type TicketTypeRepo struct{ DB *sql.DB }

func NewTicketTypeRepo(db *sql.DB) *TicketTypeRepo { return &TicketTypeRepo{DB: db} }

var (
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketTypeExists   = errors.New("ticket type already exists")
)

// Create inserts a ticket type and returns its ID. Names are unique.
func (r *TicketTypeRepo) Create(ctx context.Context, typeName string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO ticket_types (type_name) VALUES (?)", typeName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrTicketTypeExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a ticket type by id.
func (r *TicketTypeRepo) GetByID(ctx context.Context, id uint64) (model.TicketType, error) {
	var t model.TicketType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, type_name FROM ticket_types WHERE id=? LIMIT 1", id).Scan(&t.ID, &t.TypeName)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrTicketTypeNotFound
	}
	return t, err
}

// List returns all ticket types ordered by name.
func (r *TicketTypeRepo) List(ctx context.Context) ([]model.TicketType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, type_name FROM ticket_types ORDER BY type_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TicketType, 0)
	for rows.Next() {
		var t model.TicketType
		if err := rows.Scan(&t.ID, &t.TypeName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update renames a ticket type.
func (r *TicketTypeRepo) Update(ctx context.Context, t model.TicketType) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE ticket_types SET type_name=? WHERE id=?", t.TypeName, t.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrTicketTypeExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM ticket_types WHERE id=?", t.ID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrTicketTypeNotFound
		}
	}
	return nil
}

// Delete removes a ticket type unless a price still references it.
func (r *TicketTypeRepo) Delete(ctx context.Context, id uint64) error {
	var prices int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ticket_prices WHERE ticket_type_id=?", id).Scan(&prices); err != nil {
		return err
	}
	if prices > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM ticket_types WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketTypeNotFound
	}
	return nil
}
