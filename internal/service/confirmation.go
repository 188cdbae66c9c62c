package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/utils"
)

// ConfirmationService renders and delivers the booking confirmation
// email. Every failure path logs and returns without surfacing an
// error that could unwind the committed booking.
type ConfirmationService struct {
	Tickets TicketStore
	Users   UserStore
	Perfs   PerformanceStore
	Shows   ShowStore
	Venues  VenueStore
	Seats   SeatStore
	Mail    Mailer
}

func NewConfirmationService(t TicketStore, u UserStore, p PerformanceStore, s ShowStore, v VenueStore, rs SeatStore, m Mailer) *ConfirmationService {
	return &ConfirmationService{Tickets: t, Users: u, Perfs: p, Shows: s, Venues: v, Seats: rs, Mail: m}
}

// SendConfirmation mails the confirmation document for a booking
// reference. Missing bookings, absent or malformed recipient
// addresses, and delivery failures are all logged and swallowed.
func (s *ConfirmationService) SendConfirmation(ctx context.Context, ref string) {
	tickets, err := s.Tickets.ListByBookingRef(ctx, ref)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			log.Printf("confirmation: no tickets for reference %s", ref)
		} else {
			log.Printf("confirmation: load tickets for %s failed: %v", ref, err)
		}
		return
	}

	user, err := s.Users.GetByID(ctx, tickets[0].UserID)
	if err != nil {
		log.Printf("confirmation: resolve purchaser for %s failed: %v", ref, err)
		return
	}
	if !utils.ValidEmail(user.Email) {
		log.Printf("confirmation: invalid recipient address for %s, skipping", ref)
		return
	}

	body := s.renderBody(ctx, ref, tickets, user)
	subject := "Your booking confirmation " + ref
	if err := s.Mail.Send(user.Email, subject, body); err != nil {
		log.Printf("confirmation: send for %s failed: %v", ref, err)
	}
}

// renderBody builds the multi-section HTML document: summary, QR
// artifact, per-ticket detail and policy notes. Lookup failures leave
// the affected section sparse rather than aborting the send.
func (s *ConfirmationService) renderBody(ctx context.Context, ref string, tickets []model.Ticket, user model.User) string {
	var showName, venueName, perfDate string
	if perf, err := s.Perfs.GetByID(ctx, tickets[0].PerformanceID); err == nil {
		perfDate = perf.PerformanceDate
		if show, err := s.Shows.GetByID(ctx, perf.ShowID); err == nil {
			showName = show.ShowName
			if venue, err := s.Venues.GetByID(ctx, show.VenueID); err == nil {
				venueName = venue.Name
			}
		}
	}

	ids := make([]uint64, len(tickets))
	var total int64
	for i, t := range tickets {
		ids[i] = t.ID
		total += t.PriceCents
	}
	seats, err := s.Seats.ListByTicketIDs(ctx, ids)
	if err != nil {
		log.Printf("confirmation: load seats for %s failed: %v", ref, err)
		seats = nil
	}

	var b strings.Builder
	b.WriteString("<h1>Booking confirmed</h1>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(user.FullName()))
	fmt.Fprintf(&b, "<p>Your booking <strong>%s</strong> is confirmed.</p>", html.EscapeString(ref))

	b.WriteString("<h2>Summary</h2><ul>")
	fmt.Fprintf(&b, "<li>Show: %s</li>", html.EscapeString(showName))
	fmt.Fprintf(&b, "<li>Venue: %s</li>", html.EscapeString(venueName))
	fmt.Fprintf(&b, "<li>Date: %s, %s&ndash;%s</li>",
		html.EscapeString(perfDate), html.EscapeString(tickets[0].StartTime), html.EscapeString(tickets[0].EndTime))
	fmt.Fprintf(&b, "<li>Tickets: %d</li>", len(tickets))
	fmt.Fprintf(&b, "<li>Total: $%.2f</li>", float64(total)/100)
	b.WriteString("</ul>")

	if tickets[0].QRImageURL != "" {
		b.WriteString("<h2>Your entry code</h2>")
		fmt.Fprintf(&b, `<img src=%q alt="QR code" width="200" height="200"/>`, tickets[0].QRImageURL)
		fmt.Fprintf(&b, "<p>Present this code at the door. Reference: %s</p>", html.EscapeString(ref))
	}

	b.WriteString("<h2>Tickets</h2><ol>")
	for _, t := range tickets {
		fmt.Fprintf(&b, "<li>Ticket #%d &mdash; $%.2f", t.ID, float64(t.PriceCents)/100)
		for _, seat := range seats[t.ID] {
			fmt.Fprintf(&b, " &mdash; Row %d Seat %d", seat.RowNumber, seat.SeatNumber)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ol>")

	b.WriteString("<h2>Good to know</h2>")
	b.WriteString("<p>Please arrive 15 minutes before the performance starts. " +
		"Cancelled tickets are not refunded at the door; contact the box office " +
		"with your booking reference for any changes.</p>")
	return b.String()
}
