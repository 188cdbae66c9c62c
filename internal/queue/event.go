package queue

// BookingConfirmedEvent is published when a booking call completes and
// its tickets are committed. It carries enough information for
// downstream consumers to log, notify, or feed analytics without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingReference string   `json:"booking_reference"`
	PerformanceID    uint64   `json:"performance_id"`
	UserID           uint64   `json:"user_id"`
	ShowName         string   `json:"show_name"`
	VenueName        string   `json:"venue_name"`
	PerformanceDate  string   `json:"performance_date"`
	StartsAt         string   `json:"starts_at"`
	EndsAt           string   `json:"ends_at"`
	SeatLabels       []string `json:"seats"`
	TicketCount      int      `json:"ticket_count"`
	TotalAmountCents int64    `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
