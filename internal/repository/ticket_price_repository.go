package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// TicketPriceRepo provides persistence for per-performance ticket
// prices. One price row exists per (performance, ticket type) pair.
type TicketPriceRepo struct{ DB *sql.DB }

func NewTicketPriceRepo(db *sql.DB) *TicketPriceRepo { return &TicketPriceRepo{DB: db} }

var ErrTicketPriceNotFound = errors.New("ticket price not found")

const priceCols = "tp.id, tp.performance_id, tp.ticket_type_id, tt.type_name, tp.price_cents"

const priceFrom = " FROM ticket_prices tp JOIN ticket_types tt ON tt.id = tp.ticket_type_id "

func scanPrice(sc interface{ Scan(...any) error }) (model.TicketPrice, error) {
	var p model.TicketPrice
	err := sc.Scan(&p.ID, &p.PerformanceID, &p.TicketTypeID, &p.TicketType, &p.PriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrTicketPriceNotFound
	}
	return p, err
}

// Upsert inserts or updates the price for a (performance, type) pair.
func (r *TicketPriceRepo) Upsert(ctx context.Context, p model.TicketPrice) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ticket_prices (performance_id, ticket_type_id, price_cents)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE price_cents = VALUES(price_cents)`,
		p.PerformanceID, p.TicketTypeID, p.PriceCents)
	return err
}

// GetByID fetches a price row by id with its type name resolved.
// Ticket issuance resolves booking line prices through this call.
func (r *TicketPriceRepo) GetByID(ctx context.Context, id uint64) (model.TicketPrice, error) {
	return scanPrice(r.DB.QueryRowContext(ctx,
		"SELECT "+priceCols+priceFrom+"WHERE tp.id=? LIMIT 1", id))
}

// ListByPerformance returns all prices configured for a performance.
func (r *TicketPriceRepo) ListByPerformance(ctx context.Context, performanceID uint64) ([]model.TicketPrice, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+priceCols+priceFrom+"WHERE tp.performance_id=? ORDER BY tt.type_name", performanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TicketPrice, 0)
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteForPerformanceExcept removes prices of the performance whose
// ticket type is not in keep. Used when a performance update shrinks
// its price list.
func (r *TicketPriceRepo) DeleteForPerformanceExcept(ctx context.Context, performanceID uint64, keep []uint64) error {
	if len(keep) == 0 {
		_, err := r.DB.ExecContext(ctx,
			"DELETE FROM ticket_prices WHERE performance_id=?", performanceID)
		return err
	}
	q := "DELETE FROM ticket_prices WHERE performance_id=? AND ticket_type_id NOT IN (?"
	args := []any{performanceID, keep[0]}
	for _, id := range keep[1:] {
		q += ",?"
		args = append(args, id)
	}
	q += ")"
	_, err := r.DB.ExecContext(ctx, q, args...)
	return err
}
