package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/venue-ticketing/internal/config"
	"github.com/iliyamo/venue-ticketing/internal/handler"
	"github.com/iliyamo/venue-ticketing/internal/middleware"
	"github.com/iliyamo/venue-ticketing/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth        *handler.AuthHandler
	Booking     *handler.BookingHandler
	Ticket      *handler.TicketHandler
	Venue       *handler.VenueHandler
	Show        *handler.ShowHandler
	Performance *handler.PerformanceHandler
	TicketType  *handler.TicketTypeHandler
}

// Register wires all routes onto the Echo instance. Catalog reads are
// public (and sit behind the response cache); booking and ticket
// routes require a JWT; admin CRUD additionally requires role checks.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	rate := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Unauthenticated session endpoints.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register, rate)
	auth.POST("/login", h.Auth.Login, rate)
	auth.POST("/refresh", h.Auth.Refresh, rate)

	// Public catalog browse, cached.
	pub := e.Group("/v1", cache)
	pub.GET("/venues", h.Venue.List)
	pub.GET("/venues/:id", h.Venue.Get)
	pub.GET("/shows", h.Show.List)
	pub.GET("/shows/:id", h.Show.Get)
	pub.GET("/performances", h.Performance.List)
	pub.GET("/performances/:id", h.Performance.Get)
	pub.GET("/ticket-types", h.TicketType.List)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))

	v1.GET("/me", h.Auth.Me)
	v1.POST("/auth/logout", h.Auth.Logout)

	// Checkout flow; rate limited per caller.
	v1.POST("/bookings", h.Booking.Create, rate)
	v1.GET("/bookings/confirmation/:ref", h.Booking.Confirmation)

	// Ticket reads and owner-side lifecycle.
	v1.GET("/tickets/mine", h.Ticket.ListMine)
	v1.GET("/users/:id/tickets", h.Ticket.ListForUser)
	v1.GET("/tickets/by-booking/:ref", h.Ticket.ListByBooking)
	v1.GET("/tickets/:id", h.Ticket.Get)
	v1.DELETE("/tickets/:id", h.Ticket.Cancel)

	// Staff-side ticket operations.
	staff := v1.Group("", middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	staff.PUT("/tickets/:id/check-in", h.Ticket.CheckIn)
	staff.GET("/tickets/grouped", h.Ticket.ListGrouped)
	staff.GET("/tickets/performance/:id", h.Ticket.ListByPerformance)
	staff.PUT("/tickets/booking/:ref", h.Ticket.UpdateBooking)
	staff.DELETE("/tickets/booking/:ref", h.Ticket.CancelBooking)

	// Performance scheduling for staff and admins.
	staff.POST("/performances", h.Performance.Create)
	staff.POST("/performances/batch", h.Performance.CreateBatch)
	staff.PUT("/performances/:id", h.Performance.Update)
	staff.DELETE("/performances/:id", h.Performance.Delete)

	// Venue, show and lookup-table administration.
	admin := v1.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/venues", h.Venue.Create)
	admin.PUT("/venues/:id", h.Venue.Update)
	admin.DELETE("/venues/:id", h.Venue.Delete)
	admin.POST("/shows", h.Show.Create)
	admin.PUT("/shows/:id", h.Show.Update)
	admin.DELETE("/shows/:id", h.Show.Delete)
	admin.POST("/ticket-types", h.TicketType.Create)
	admin.PUT("/ticket-types/:id", h.TicketType.Update)
	admin.DELETE("/ticket-types/:id", h.TicketType.Delete)
}
