package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// Validation sentinels for performance scheduling. Handlers translate
// these to 400/409 responses.
var (
	ErrBadTimeWindow      = errors.New("end time must be after start time")
	ErrOutsideShowWindow  = errors.New("performance date falls outside the show's run")
	ErrBadSeatingType     = errors.New("unknown seating type")
	ErrBadPrice           = errors.New("ticket price must be positive")
	ErrScheduleConflict   = errors.New("performance overlaps an existing performance at this venue")
	ErrBadPerformanceDate = errors.New("invalid performance date or time format")
)

// PerformanceAdminStore is the full performance repository surface the
// scheduling service drives.
type PerformanceAdminStore interface {
	PerformanceStore
	Create(ctx context.Context, p model.Performance) (uint64, error)
	List(ctx context.Context, showID *uint64) ([]model.Performance, error)
	Update(ctx context.Context, p model.Performance) error
	HasConflicting(ctx context.Context, showID uint64, date, start, end string, excludeID *uint64) (bool, error)
	TicketCount(ctx context.Context, id uint64) (int, error)
	CancelCascade(ctx context.Context, id uint64, updatedBy uint64) error
	Delete(ctx context.Context, id uint64) error
}

// PriceInput attaches one ticket type price to a performance write.
type PriceInput struct {
	TicketTypeID uint64 `json:"ticket_type_id"`
	PriceCents   int64  `json:"price_cents"`
}

// PerformanceInput is the write payload for create and update.
type PerformanceInput struct {
	ShowID          uint64            `json:"show_id"`
	PerformanceDate string            `json:"performance_date"`
	StartTime       string            `json:"start_time"`
	EndTime         string            `json:"end_time"`
	SeatingType     model.SeatingType `json:"seating_type"`
	Status          string            `json:"status"`
	SoldOut         bool              `json:"sold_out"`
	Prices          []PriceInput      `json:"prices"`
}

// PerformanceDetail is a performance plus its configured prices and
// derived availability numbers.
type PerformanceDetail struct {
	model.Performance
	Prices            []model.TicketPrice `json:"prices"`
	TicketsSold       int                 `json:"tickets_sold"`
	SeatsReserved     int                 `json:"seats_reserved"`
	RemainingCapacity int                 `json:"remaining_capacity"`
}

// BatchOutcome reports one entry of a batch create: either the created
// ID or the reason the entry was skipped.
type BatchOutcome struct {
	PerformanceID uint64 `json:"performance_id,omitempty"`
	Skipped       bool   `json:"skipped"`
	Reason        string `json:"reason,omitempty"`
}

// PerformanceService owns performance scheduling: creation and edits
// guarded by the venue conflict check, price maintenance, and the
// soft-cancel cascade on delete.
type PerformanceService struct {
	Perfs   PerformanceAdminStore
	Shows   ShowStore
	Venues  VenueStore
	Prices  PriceStore
	Tickets TicketStore
	Seats   SeatStore
}

func NewPerformanceService(p PerformanceAdminStore, sh ShowStore, v VenueStore, pr PriceStore, t TicketStore, se SeatStore) *PerformanceService {
	return &PerformanceService{Perfs: p, Shows: sh, Venues: v, Prices: pr, Tickets: t, Seats: se}
}

// validate checks the input against its show and the venue schedule.
// excludeID skips the row being edited in the conflict probe.
func (s *PerformanceService) validate(ctx context.Context, in PerformanceInput, excludeID *uint64) error {
	if !in.SeatingType.Valid() {
		return ErrBadSeatingType
	}
	date, err := time.Parse("2006-01-02", in.PerformanceDate)
	if err != nil {
		return ErrBadPerformanceDate
	}
	start, err := time.Parse("15:04:05", in.StartTime)
	if err != nil {
		return ErrBadPerformanceDate
	}
	end, err := time.Parse("15:04:05", in.EndTime)
	if err != nil {
		return ErrBadPerformanceDate
	}
	if !end.After(start) {
		return ErrBadTimeWindow
	}

	show, err := s.Shows.GetByID(ctx, in.ShowID)
	if err != nil {
		return err
	}
	first, err := time.Parse("2006-01-02", show.StartDate)
	if err != nil {
		return ErrBadPerformanceDate
	}
	last, err := time.Parse("2006-01-02", show.EndDate)
	if err != nil {
		return ErrBadPerformanceDate
	}
	if date.Before(first) || date.After(last) {
		return ErrOutsideShowWindow
	}

	for _, p := range in.Prices {
		if p.PriceCents <= 0 {
			return ErrBadPrice
		}
	}

	// Inactive and cancelled performances never hold their slot, so
	// only probe when this row would count for conflicts.
	status := in.Status
	if status == "" {
		status = model.PerformanceScheduled
	}
	if status == model.PerformanceScheduled {
		conflict, err := s.Perfs.HasConflicting(ctx, in.ShowID, in.PerformanceDate, in.StartTime, in.EndTime, excludeID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrScheduleConflict
		}
	}
	return nil
}

// Create validates and inserts one performance with its prices.
func (s *PerformanceService) Create(ctx context.Context, in PerformanceInput, createdBy uint64) (uint64, error) {
	if err := s.validate(ctx, in, nil); err != nil {
		return 0, err
	}
	status := in.Status
	if status == "" {
		status = model.PerformanceScheduled
	}
	id, err := s.Perfs.Create(ctx, model.Performance{
		ShowID:          in.ShowID,
		PerformanceDate: in.PerformanceDate,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		SeatingType:     in.SeatingType,
		Status:          status,
		SoldOut:         in.SoldOut,
		CreatedBy:       createdBy,
	})
	if err != nil {
		return 0, err
	}
	for _, p := range in.Prices {
		if err := s.Prices.Upsert(ctx, model.TicketPrice{
			PerformanceID: id,
			TicketTypeID:  p.TicketTypeID,
			PriceCents:    p.PriceCents,
		}); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// CreateBatch inserts a run of performances, skipping entries that
// fail validation instead of aborting the whole batch.
func (s *PerformanceService) CreateBatch(ctx context.Context, ins []PerformanceInput, createdBy uint64) []BatchOutcome {
	out := make([]BatchOutcome, 0, len(ins))
	for _, in := range ins {
		id, err := s.Create(ctx, in, createdBy)
		if err != nil {
			out = append(out, BatchOutcome{Skipped: true, Reason: err.Error()})
			continue
		}
		out = append(out, BatchOutcome{PerformanceID: id})
	}
	return out
}

// Update validates and rewrites a performance, then reconciles its
// price list: supplied types are upserted, omitted ones removed.
func (s *PerformanceService) Update(ctx context.Context, id uint64, in PerformanceInput, updatedBy uint64) error {
	current, err := s.Perfs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if in.ShowID == 0 {
		in.ShowID = current.ShowID
	}
	if err := s.validate(ctx, in, &id); err != nil {
		return err
	}
	status := in.Status
	if status == "" {
		status = current.Status
	}
	if err := s.Perfs.Update(ctx, model.Performance{
		ID:              id,
		ShowID:          in.ShowID,
		PerformanceDate: in.PerformanceDate,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		SeatingType:     in.SeatingType,
		Status:          status,
		SoldOut:         in.SoldOut,
		UpdatedBy:       &updatedBy,
	}); err != nil {
		return err
	}

	keep := make([]uint64, 0, len(in.Prices))
	for _, p := range in.Prices {
		if err := s.Prices.Upsert(ctx, model.TicketPrice{
			PerformanceID: id,
			TicketTypeID:  p.TicketTypeID,
			PriceCents:    p.PriceCents,
		}); err != nil {
			return err
		}
		keep = append(keep, p.TicketTypeID)
	}
	return s.Prices.DeleteForPerformanceExcept(ctx, id, keep)
}

// Delete removes a performance. When tickets exist the row is kept and
// cancelled instead, cascading cancellation to its tickets; the return
// value reports whether a hard delete happened.
func (s *PerformanceService) Delete(ctx context.Context, id, callerID uint64) (hardDeleted bool, err error) {
	n, err := s.Perfs.TicketCount(ctx, id)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, s.Perfs.CancelCascade(ctx, id, callerID)
	}
	return true, s.Perfs.Delete(ctx, id)
}

// Get returns one performance with prices and availability.
func (s *PerformanceService) Get(ctx context.Context, id uint64) (PerformanceDetail, error) {
	perf, err := s.Perfs.GetByID(ctx, id)
	if err != nil {
		return PerformanceDetail{}, err
	}
	prices, err := s.Prices.ListByPerformance(ctx, id)
	if err != nil {
		return PerformanceDetail{}, err
	}
	sold, err := s.Tickets.CountActiveByPerformance(ctx, id)
	if err != nil {
		return PerformanceDetail{}, err
	}
	reserved, err := s.Seats.CountActiveByPerformance(ctx, id)
	if err != nil {
		return PerformanceDetail{}, err
	}

	// General admission burns capacity per ticket; customised seating
	// burns it per reserved seat.
	used := sold
	if perf.SeatingType == model.SeatingCustomised {
		used = reserved
	}
	remaining := 0
	if show, err := s.Shows.GetByID(ctx, perf.ShowID); err == nil {
		if venue, err := s.Venues.GetByID(ctx, show.VenueID); err == nil {
			remaining = venue.MaxCapacity - used
			if remaining < 0 {
				remaining = 0
			}
		}
	}
	return PerformanceDetail{
		Performance:       perf,
		Prices:            prices,
		TicketsSold:       sold,
		SeatsReserved:     reserved,
		RemainingCapacity: remaining,
	}, nil
}

// List returns performances, optionally filtered by show.
func (s *PerformanceService) List(ctx context.Context, showID *uint64) ([]model.Performance, error) {
	return s.Perfs.List(ctx, showID)
}
