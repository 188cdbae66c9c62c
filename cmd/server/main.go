package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-ticketing/internal/config"
	"github.com/iliyamo/venue-ticketing/internal/database"
	"github.com/iliyamo/venue-ticketing/internal/handler"
	"github.com/iliyamo/venue-ticketing/internal/queue"
	"github.com/iliyamo/venue-ticketing/internal/repository"
	"github.com/iliyamo/venue-ticketing/internal/router"
	"github.com/iliyamo/venue-ticketing/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	venues := repository.NewVenueRepo(db)
	shows := repository.NewShowRepo(db)
	perfs := repository.NewPerformanceRepo(db)
	types := repository.NewTicketTypeRepo(db)
	prices := repository.NewTicketPriceRepo(db)
	tickets := repository.NewTicketRepo(db)
	seats := repository.NewReservedSeatRepo(db)

	// Services.
	mailer := service.GomailMailer{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}
	confirm := service.NewConfirmationService(tickets, users, perfs, shows, venues, seats, mailer)
	minter := &service.SQLTicketMinter{DB: db, Tickets: tickets, Seats: seats}
	booking := service.NewBookingService(perfs, shows, venues, users, tickets, prices, minter,
		service.PNGQREncoder{}, confirm, service.AMQPPublisher{URL: cfg.AMQPURL}, cfg.BcryptCost)
	ticketSvc := service.NewTicketService(tickets, seats, perfs, shows, venues, users)
	perfSvc := service.NewPerformanceService(perfs, shows, venues, prices, tickets, seats)

	// Background consumer logging confirmed bookings.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Booking:     handler.NewBookingHandler(booking, ticketSvc),
		Ticket:      handler.NewTicketHandler(ticketSvc),
		Venue:       handler.NewVenueHandler(venues),
		Show:        handler.NewShowHandler(shows, venues),
		Performance: handler.NewPerformanceHandler(perfSvc),
		TicketType:  handler.NewTicketTypeHandler(types),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
