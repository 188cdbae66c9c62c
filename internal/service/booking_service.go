package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/queue"
	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/utils"
)

// defaultPurchaserPassword is assigned to identities auto-registered
// by the booking flow. Such accounts are expected to go through a
// password reset before interactive use.
const defaultPurchaserPassword = "Password@#123"

// maxReferenceAttempts bounds the generate-then-verify loop for
// booking references.
const maxReferenceAttempts = 5

// ErrReferenceExhausted is returned when no unique booking reference
// could be allocated within the attempt budget.
var ErrReferenceExhausted = errors.New("could not allocate a unique booking reference")

// BookingLine is one requested quantity of a priced ticket type.
type BookingLine struct {
	TicketPriceID uint64 `json:"ticket_price_id"`
	Quantity      int    `json:"quantity"`
	PriceCents    int64  `json:"price_cents"`
}

// SeatSelection is an explicit (row, seat) choice for one unit.
type SeatSelection struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// CustomerInfo identifies the purchaser. When the email resolves to no
// account, one is registered on the fly.
type CustomerInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// BookingRequest is the orchestrator input for one checkout call.
type BookingRequest struct {
	PerformanceID uint64          `json:"performance_id"`
	SeatingType   model.SeatingType `json:"seating_type"`
	Lines         []BookingLine   `json:"ticket_lines"`
	SelectedSeats []SeatSelection `json:"selected_seats"`
	Customer      CustomerInfo    `json:"customer"`
	TotalCents    int64           `json:"total_cents"`
	CreatedBy     uint64          `json:"-"` // authenticated caller
}

// BookingResult is what the orchestrator hands back. Validation
// failures come back with Success=false and a human message rather
// than an error.
type BookingResult struct {
	Success          bool           `json:"success"`
	BookingReference string         `json:"booking_reference,omitempty"`
	Tickets          []model.Ticket `json:"tickets,omitempty"`
	TotalCents       int64          `json:"total_cents"`
	Message          string         `json:"message,omitempty"`
}

// TicketUnit is one fully prepared unit of issuance handed to the
// minter: the ticket row to insert plus its optional seat.
type TicketUnit struct {
	Ticket        model.Ticket
	Seat          *SeatSelection
	SeatingPlanID uint64
}

// TicketMinter persists all units of a booking as one atomic batch.
// A seat conflict or storage failure on any unit must leave no ticket
// of the batch behind.
type TicketMinter interface {
	MintBooking(ctx context.Context, units []TicketUnit) ([]model.Ticket, error)
}

// Confirmer dispatches the booking confirmation; implementations
// swallow their own failures.
type Confirmer interface {
	SendConfirmation(ctx context.Context, ref string)
}

// SQLTicketMinter runs the issuance loop inside a single database
// transaction. Seat occupancy is re-checked under FOR UPDATE inside
// the same transaction as the inserts, closing the check-then-act
// window between concurrent bookings of one seat.
type SQLTicketMinter struct {
	DB      *sql.DB
	Tickets *repository.TicketRepo
	Seats   *repository.ReservedSeatRepo
}

func (m *SQLTicketMinter) MintBooking(ctx context.Context, units []TicketUnit) ([]model.Ticket, error) {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make([]model.Ticket, 0, len(units))
	for _, u := range units {
		if u.Seat != nil {
			taken, err := m.Seats.IsTakenTx(ctx, tx, u.SeatingPlanID, u.Seat.Row, u.Seat.Seat, u.Ticket.PerformanceID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, repository.ErrSeatTaken
			}
		}
		id, err := m.Tickets.CreateTx(ctx, tx, u.Ticket)
		if err != nil {
			return nil, err
		}
		t := u.Ticket
		t.ID = id
		if u.Seat != nil {
			ticketID := id
			seat := model.ReservedSeat{
				SeatingPlanID: u.SeatingPlanID,
				TicketID:      &ticketID,
				RowNumber:     u.Seat.Row,
				SeatNumber:    u.Seat.Seat,
			}
			seatID, err := m.Seats.CreateTx(ctx, tx, seat)
			if err != nil {
				return nil, err
			}
			seat.ID = seatID
			t.ReservedSeats = []model.ReservedSeat{seat}
		}
		out = append(out, t)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingService is the checkout orchestrator: it validates a booking
// request against the performance and seating mode, mints every ticket
// unit through the TicketMinter, and triggers best-effort confirmation
// delivery and event publication.
type BookingService struct {
	Perfs      PerformanceStore
	Shows      ShowStore
	Venues     VenueStore
	Users      UserStore
	Tickets    TicketStore
	Prices     PriceStore
	Minter     TicketMinter
	QR         QREncoder
	Confirm    Confirmer
	Events     EventPublisher
	BcryptCost int

	now func() time.Time
}

func NewBookingService(perfs PerformanceStore, shows ShowStore, venues VenueStore, users UserStore,
	tickets TicketStore, prices PriceStore, minter TicketMinter, qr QREncoder, confirm Confirmer,
	events EventPublisher, bcryptCost int) *BookingService {
	return &BookingService{
		Perfs:      perfs,
		Shows:      shows,
		Venues:     venues,
		Users:      users,
		Tickets:    tickets,
		Prices:     prices,
		Minter:     minter,
		QR:         qr,
		Confirm:    confirm,
		Events:     events,
		BcryptCost: bcryptCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func failResult(msg string) (BookingResult, error) {
	return BookingResult{Success: false, Message: msg}, nil
}

// CreateBooking runs one checkout call. Validation failures return a
// BookingResult with Success=false and a nil error; seat conflicts
// surface as repository.ErrSeatTaken; anything else is an internal
// error the handler converts to a generic failure.
func (s *BookingService) CreateBooking(ctx context.Context, req BookingRequest) (BookingResult, error) {
	perf, err := s.Perfs.GetByID(ctx, req.PerformanceID)
	if err != nil {
		if errors.Is(err, repository.ErrPerformanceNotFound) {
			return failResult("Performance not found")
		}
		return BookingResult{}, err
	}
	if !perf.Bookable() {
		return failResult("Performance is not open for booking")
	}
	if req.SeatingType != perf.SeatingType {
		return failResult("Seating type mismatch")
	}

	totalUnits := 0
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return failResult("Invalid ticket quantity")
		}
		totalUnits += line.Quantity
	}
	if totalUnits == 0 {
		return failResult("No tickets requested")
	}

	// Lines referencing a configured price resolve the authoritative
	// per-unit amount; lines without one keep the submitted amount.
	lineCents := make([]int64, len(req.Lines))
	for i, line := range req.Lines {
		lineCents[i] = line.PriceCents
		if line.TicketPriceID == 0 {
			continue
		}
		price, err := s.Prices.GetByID(ctx, line.TicketPriceID)
		if err != nil {
			if errors.Is(err, repository.ErrTicketPriceNotFound) {
				return failResult("Ticket price not found")
			}
			return BookingResult{}, err
		}
		if price.PerformanceID != req.PerformanceID {
			return failResult("Ticket price does not belong to this performance")
		}
		lineCents[i] = price.PriceCents
	}

	var planID uint64
	var plan *model.SeatingPlan
	switch perf.SeatingType {
	case model.SeatingCustomised:
		if len(req.SelectedSeats) != totalUnits {
			return failResult(fmt.Sprintf(
				"Selected seat count %d does not match requested ticket count %d",
				len(req.SelectedSeats), totalUnits))
		}
		show, err := s.Shows.GetByID(ctx, perf.ShowID)
		if err != nil {
			return BookingResult{}, err
		}
		venue, err := s.Venues.GetByID(ctx, show.VenueID)
		if err != nil {
			return BookingResult{}, err
		}
		if venue.SeatingPlan == nil {
			return failResult("Venue has no seating plan")
		}
		plan = venue.SeatingPlan
		planID = plan.ID
		for _, sel := range req.SelectedSeats {
			if sel.Row < 1 || sel.Row > plan.Rows || sel.Seat < 1 || sel.Seat > plan.SeatsPerRow {
				return failResult(fmt.Sprintf("Seat row %d seat %d is outside the seating plan", sel.Row, sel.Seat))
			}
		}
	default:
		if len(req.SelectedSeats) > 0 {
			return failResult("Seat selection not allowed")
		}
	}

	purchaserID, err := s.resolvePurchaser(ctx, req.Customer, req.CreatedBy)
	if err != nil {
		return BookingResult{}, err
	}

	ref, err := s.newReference(ctx)
	if err != nil {
		return BookingResult{}, err
	}

	issuedAt := s.now()
	qrURL, err := s.QR.DataURL(BuildQRPayload(perf.ID, purchaserID, issuedAt))
	if err != nil {
		return BookingResult{}, err
	}

	// Units are built in line-then-quantity order; customised seats are
	// consumed one per unit in request order.
	units := make([]TicketUnit, 0, totalUnits)
	seatIdx := 0
	for li, line := range req.Lines {
		priceID := line.TicketPriceID
		qty := line.Quantity
		for i := 0; i < qty; i++ {
			t := model.Ticket{
				PerformanceID: perf.ID,
				UserID:        purchaserID,
				QRCode:        ref,
				QRImageURL:    qrURL,
				StartTime:     perf.StartTime,
				EndTime:       perf.EndTime,
				PriceCents:    lineCents[li],
				Quantity:      &qty,
				CreatedBy:     req.CreatedBy,
			}
			if priceID != 0 {
				id := priceID
				t.TicketPriceID = &id
			}
			unit := TicketUnit{Ticket: t}
			if perf.SeatingType == model.SeatingCustomised {
				sel := req.SelectedSeats[seatIdx]
				seatIdx++
				unit.Seat = &sel
				unit.SeatingPlanID = planID
			}
			units = append(units, unit)
		}
	}

	tickets, err := s.Minter.MintBooking(ctx, units)
	if err != nil {
		return BookingResult{}, err
	}

	s.dispatch(ctx, ref, perf, purchaserID, tickets, req.TotalCents)

	return BookingResult{
		Success:          true,
		BookingReference: ref,
		Tickets:          tickets,
		TotalCents:       req.TotalCents,
		Message:          "Booking confirmed",
	}, nil
}

// resolvePurchaser looks up or registers the purchaser identity by
// email. Requests without a usable address fall back to the
// authenticated caller.
func (s *BookingService) resolvePurchaser(ctx context.Context, c CustomerInfo, fallback uint64) (uint64, error) {
	email := strings.TrimSpace(c.Email)
	if !utils.ValidEmail(email) {
		return fallback, nil
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return 0, err
	}
	id, err := s.Users.Create(ctx, model.User{
		Email:     email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Role:      model.RoleCustomer,
	}, defaultPurchaserPassword, s.BcryptCost)
	if errors.Is(err, repository.ErrEmailExists) {
		// Lost a registration race; the account now exists.
		u, err := s.Users.GetByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		return u.ID, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// newReference generates a booking reference and verifies it against
// storage, retrying on collision within a bounded attempt count.
func (s *BookingService) newReference(ctx context.Context) (string, error) {
	for i := 0; i < maxReferenceAttempts; i++ {
		ref := utils.NewBookingReference(s.now())
		exists, err := s.Tickets.BookingRefExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !exists {
			return ref, nil
		}
	}
	return "", ErrReferenceExhausted
}

// dispatch triggers confirmation mail and the broker event. Both are
// best-effort; the booking is committed regardless.
func (s *BookingService) dispatch(ctx context.Context, ref string, perf model.Performance, userID uint64, tickets []model.Ticket, totalCents int64) {
	if s.Confirm != nil {
		s.Confirm.SendConfirmation(ctx, ref)
	}
	if s.Events == nil {
		return
	}

	var showName, venueName string
	if show, err := s.Shows.GetByID(ctx, perf.ShowID); err == nil {
		showName = show.ShowName
		if venue, err := s.Venues.GetByID(ctx, show.VenueID); err == nil {
			venueName = venue.Name
		}
	}
	var seatLabels []string
	for _, t := range tickets {
		for _, seat := range t.ReservedSeats {
			seatLabels = append(seatLabels, fmt.Sprintf("R%dS%d", seat.RowNumber, seat.SeatNumber))
		}
	}
	ev := queue.BookingConfirmedEvent{
		BookingReference: ref,
		PerformanceID:    perf.ID,
		UserID:           userID,
		ShowName:         showName,
		VenueName:        venueName,
		PerformanceDate:  perf.PerformanceDate,
		StartsAt:         perf.StartTime,
		EndsAt:           perf.EndTime,
		SeatLabels:       seatLabels,
		TicketCount:      len(tickets),
		TotalAmountCents: totalCents,
		ConfirmedAt:      s.now().Format(time.RFC3339),
	}
	if err := s.Events.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmed event for %s failed: %v", ref, err)
	}
}
