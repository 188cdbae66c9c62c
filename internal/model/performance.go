package model

import "time"

// SeatingType selects how seats are allocated for a performance.
// The numeric values are part of the public API contract
// (0 = general admission, 1 = customised seating).
type SeatingType int

const (
	// SeatingGeneralAdmission sells untargeted capacity; no individual
	// seat is assigned to a ticket.
	SeatingGeneralAdmission SeatingType = 0
	// SeatingCustomised requires an explicit (row, seat) selection per
	// ticket, drawn from the venue's seating plan.
	SeatingCustomised SeatingType = 1
)

// Valid reports whether t is one of the two known seating types.
func (t SeatingType) Valid() bool {
	return t == SeatingGeneralAdmission || t == SeatingCustomised
}

// Performance lifecycle states.  A single status column replaces the
// original schema's independent active/cancel boolean pair, whose four
// combinations included two meaningless ones.
const (
	PerformanceScheduled = "SCHEDULED" // bookable, counts for schedule conflicts
	PerformanceInactive  = "INACTIVE"  // hidden from sale, not conflict-relevant
	PerformanceCancelled = "CANCELLED" // soft-deleted, tickets cascade-cancelled
)

// Performance is a single dated occurrence of a show.  StartTime and
// EndTime use the DB TIME format "15:04:05"; PerformanceDate uses
// "2006-01-02".  Both are stored in UTC.
//
// Fields:
//  ID              – primary key identifier.
//  ShowID          – show this performance belongs to.
//  PerformanceDate – calendar date of the performance.
//  StartTime       – doors time ("HH:MM:SS"), must precede EndTime.
//  EndTime         – finish time ("HH:MM:SS").
//  SeatingType     – general admission or customised seating.
//  Status          – SCHEDULED, INACTIVE or CANCELLED.
//  SoldOut         – manual sold-out flag set by staff.
//  CreatedBy       – user ID of the creator.
//  UpdatedBy       – user ID of the last updater (nullable).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp (nullable).
type Performance struct {
	ID              uint64      `json:"id"`               // performances.id
	ShowID          uint64      `json:"show_id"`          // performances.show_id
	PerformanceDate string      `json:"performance_date"` // performances.performance_date
	StartTime       string      `json:"start_time"`       // performances.start_time
	EndTime         string      `json:"end_time"`         // performances.end_time
	SeatingType     SeatingType `json:"seating_type"`     // performances.seating_type
	Status          string      `json:"status"`           // performances.status
	SoldOut         bool        `json:"sold_out"`         // performances.sold_out
	CreatedBy       uint64      `json:"created_by"`       // performances.created_by
	UpdatedBy       *uint64     `json:"updated_by"`       // performances.updated_by (nullable)
	CreatedAt       time.Time   `json:"created_at"`       // performances.created_at
	UpdatedAt       *time.Time  `json:"updated_at"`       // performances.updated_at (nullable)
}

// Bookable reports whether tickets may currently be issued against
// this performance.
func (p Performance) Bookable() bool {
	return p.Status == PerformanceScheduled && !p.SoldOut
}
