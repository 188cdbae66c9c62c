package model

import "time"

// TicketType is a lookup row naming a class of admission
// (e.g. Adult, Concession, Child).  Type names are unique.
type TicketType struct {
	ID       uint64 `json:"id"`        // ticket_types.id
	TypeName string `json:"type_name"` // ticket_types.type_name
}

// TicketPrice attaches a price to one ticket type for one performance.
// At most one price per (performance, ticket type) pair is meaningful;
// prices are non-negative and must be positive when first created.
//
// Fields:
//  ID            – primary key identifier.
//  PerformanceID – performance this price belongs to.
//  TicketTypeID  – ticket type being priced.
//  TicketType    – resolved type name for display (may be empty).
//  PriceCents    – price in cents.
type TicketPrice struct {
	ID            uint64 `json:"id"`              // ticket_prices.id
	PerformanceID uint64 `json:"performance_id"`  // ticket_prices.performance_id
	TicketTypeID  uint64 `json:"ticket_type_id"`  // ticket_prices.ticket_type_id
	TicketType    string `json:"ticket_type"`     // joined from ticket_types.type_name
	PriceCents    int64  `json:"price_cents"`     // ticket_prices.price_cents
}

// Ticket is a single unit of admission to one performance.  QRCode
// holds the booking reference shared by every ticket minted in the
// same booking call; QRImageURL holds the rendered QR artifact as a
// base64 data URL.  Tickets are never hard-deleted: cancellation
// flips the Cancelled flag and implicitly frees any reserved seats.
//
// Fields:
//  ID            – primary key identifier.
//  PerformanceID – performance admitted to.
//  UserID        – purchaser identity.
//  QRCode        – booking reference (shared across the booking).
//  QRImageURL    – data:image/png;base64 QR artifact.
//  StartTime     – copied from the performance at issuance.
//  EndTime       – copied from the performance at issuance.
//  IsCheckedIn   – set once at the door; re-check-in is a no-op.
//  Cancelled     – soft-delete flag.
//  PriceCents    – price paid for this ticket in cents.
//  Quantity      – line quantity recorded at purchase (nullable).
//  TicketPriceID – ticket price row applied (nullable).
//  CreatedBy     – user ID of the creator.
//  UpdatedBy     – user ID of the last updater (nullable).
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp (nullable).
type Ticket struct {
	ID            uint64     `json:"id"`               // tickets.id
	PerformanceID uint64     `json:"performance_id"`   // tickets.performance_id
	UserID        uint64     `json:"user_id"`          // tickets.user_id
	QRCode        string     `json:"qr_code"`          // tickets.qr_code (booking reference)
	QRImageURL    string     `json:"qr_image_url"`     // tickets.qr_image_url
	StartTime     string     `json:"start_time"`       // tickets.start_time ("HH:MM:SS")
	EndTime       string     `json:"end_time"`         // tickets.end_time   ("HH:MM:SS")
	IsCheckedIn   bool       `json:"is_checked_in"`    // tickets.is_checked_in
	Cancelled     bool       `json:"cancelled"`        // tickets.cancelled
	PriceCents    int64      `json:"price_cents"`      // tickets.price_cents
	Quantity      *int       `json:"quantity"`         // tickets.quantity (nullable)
	TicketPriceID *uint64    `json:"ticket_price_id"`  // tickets.ticket_price_id (nullable)
	CreatedBy     uint64     `json:"created_by"`       // tickets.created_by
	UpdatedBy     *uint64    `json:"updated_by"`       // tickets.updated_by (nullable)
	CreatedAt     time.Time  `json:"created_at"`       // tickets.created_at
	UpdatedAt     *time.Time `json:"updated_at"`       // tickets.updated_at (nullable)

	// Hydrated relations, populated by the detail queries.
	ReservedSeats   []ReservedSeat `json:"reserved_seats"`
	ShowName        string         `json:"show_name,omitempty"`
	VenueName       string         `json:"venue_name,omitempty"`
	PerformanceDate string         `json:"performance_date,omitempty"`
	UserEmail       string         `json:"user_email,omitempty"`
	UserName        string         `json:"user_name,omitempty"`
}

// ReservedSeat is a specific (row, seat) occupancy record on a seating
// plan, optionally linked to a ticket.  A nil TicketID means the seat
// is unoccupied.  Rows are never deleted when a ticket is cancelled;
// the occupancy check simply ignores reservations whose ticket is
// cancelled, so freeing is a derived property of cancellation.
type ReservedSeat struct {
	ID            uint64    `json:"id"`              // reserved_seats.id
	SeatingPlanID uint64    `json:"seating_plan_id"` // reserved_seats.seating_plan_id
	TicketID      *uint64   `json:"ticket_id"`       // reserved_seats.ticket_id (nullable)
	RowNumber     int       `json:"row_number"`      // reserved_seats.row_number
	SeatNumber    int       `json:"seat_number"`     // reserved_seats.seat_number
	CreatedAt     time.Time `json:"created_at"`      // reserved_seats.created_at
}
