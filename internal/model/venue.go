package model

import "time"

// Venue represents a physical venue where performances take place.
// Each venue carries a hard capacity ceiling and exactly one seating
// plan describing its reserved-seating grid.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – venue name, unique.
//  Address     – street address (optional).
//  MaxCapacity – maximum number of patrons the venue may hold.
//  CreatedBy   – user ID of the creator.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Venue struct {
	ID          uint64       `json:"id"`           // venues.id
	Name        string       `json:"name"`         // venues.name
	Address     string       `json:"address"`      // venues.address
	MaxCapacity int          `json:"max_capacity"` // venues.max_capacity
	CreatedBy   uint64       `json:"created_by"`   // venues.created_by
	CreatedAt   time.Time    `json:"created_at"`   // venues.created_at
	UpdatedAt   time.Time    `json:"updated_at"`   // venues.updated_at
	SeatingPlan *SeatingPlan `json:"seating_plan,omitempty"`
}

// SeatingPlan is the row/seats-per-row grid attached 1:1 to a venue.
// Its total seat count (Rows * SeatsPerRow) must never exceed the
// venue's MaxCapacity; that invariant is enforced when the venue is
// created or updated.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – owning venue (unique).
//  Rows        – number of seating rows (>= 0).
//  SeatsPerRow – number of seats in each row (>= 0).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type SeatingPlan struct {
	ID          uint64    `json:"id"`            // seating_plans.id
	VenueID     uint64    `json:"venue_id"`      // seating_plans.venue_id
	Rows        int       `json:"rows"`          // seating_plans.rows
	SeatsPerRow int       `json:"seats_per_row"` // seating_plans.seats_per_row
	CreatedAt   time.Time `json:"created_at"`    // seating_plans.created_at
	UpdatedAt   time.Time `json:"updated_at"`    // seating_plans.updated_at
}
