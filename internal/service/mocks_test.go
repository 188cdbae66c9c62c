package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/queue"
)

// Mock structures implementing the service collaborator interfaces.

type MockPerformanceStore struct {
	mock.Mock
}

func (m *MockPerformanceStore) GetByID(ctx context.Context, id uint64) (model.Performance, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Performance), args.Error(1)
}

type MockShowStore struct {
	mock.Mock
}

func (m *MockShowStore) GetByID(ctx context.Context, id uint64) (model.Show, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Show), args.Error(1)
}

type MockVenueStore struct {
	mock.Mock
}

func (m *MockVenueStore) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Venue), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, u model.User, password string, cost int) (uint64, error) {
	args := m.Called(ctx, u, password, cost)
	return args.Get(0).(uint64), args.Error(1)
}

type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Ticket), args.Error(1)
}

func (m *MockTicketStore) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Ticket), args.Error(1)
}

func (m *MockTicketStore) ListByPerformance(ctx context.Context, performanceID uint64) ([]model.Ticket, error) {
	args := m.Called(ctx, performanceID)
	return args.Get(0).([]model.Ticket), args.Error(1)
}

func (m *MockTicketStore) ListByBookingRef(ctx context.Context, ref string) ([]model.Ticket, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ticket), args.Error(1)
}

func (m *MockTicketStore) BookingRefExists(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketStore) CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error) {
	args := m.Called(ctx, performanceID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketStore) CheckIn(ctx context.Context, id, updatedBy uint64) (model.Ticket, error) {
	args := m.Called(ctx, id, updatedBy)
	return args.Get(0).(model.Ticket), args.Error(1)
}

func (m *MockTicketStore) Cancel(ctx context.Context, id, updatedBy uint64) error {
	args := m.Called(ctx, id, updatedBy)
	return args.Error(0)
}

func (m *MockTicketStore) CheckInByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error) {
	args := m.Called(ctx, ref, updatedBy)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketStore) CancelByBookingRef(ctx context.Context, ref string, updatedBy uint64) (int, error) {
	args := m.Called(ctx, ref, updatedBy)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketStore) UpdateByBookingRef(ctx context.Context, ref string, isCheckedIn, cancelled *bool, updatedBy uint64) (int, error) {
	args := m.Called(ctx, ref, isCheckedIn, cancelled, updatedBy)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketStore) ListAll(ctx context.Context) ([]model.Ticket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ticket), args.Error(1)
}

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) IsTaken(ctx context.Context, planID uint64, row, seat int, performanceID uint64) (bool, error) {
	args := m.Called(ctx, planID, row, seat, performanceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatStore) ListByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64][]model.ReservedSeat, error) {
	args := m.Called(ctx, ticketIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64][]model.ReservedSeat), args.Error(1)
}

func (m *MockSeatStore) CountActiveByPerformance(ctx context.Context, performanceID uint64) (int, error) {
	args := m.Called(ctx, performanceID)
	return args.Int(0), args.Error(1)
}

type MockPriceStore struct {
	mock.Mock
}

func (m *MockPriceStore) GetByID(ctx context.Context, id uint64) (model.TicketPrice, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TicketPrice), args.Error(1)
}

func (m *MockPriceStore) ListByPerformance(ctx context.Context, performanceID uint64) ([]model.TicketPrice, error) {
	args := m.Called(ctx, performanceID)
	return args.Get(0).([]model.TicketPrice), args.Error(1)
}

func (m *MockPriceStore) Upsert(ctx context.Context, p model.TicketPrice) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPriceStore) DeleteForPerformanceExcept(ctx context.Context, performanceID uint64, keep []uint64) error {
	args := m.Called(ctx, performanceID, keep)
	return args.Error(0)
}

type MockMinter struct {
	mock.Mock
}

func (m *MockMinter) MintBooking(ctx context.Context, units []TicketUnit) ([]model.Ticket, error) {
	args := m.Called(ctx, units)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ticket), args.Error(1)
}

type MockQREncoder struct {
	mock.Mock
}

func (m *MockQREncoder) DataURL(content string) (string, error) {
	args := m.Called(content)
	return args.String(0), args.Error(1)
}

// MockConfirmer records dispatch calls; confirmation has no return.
type MockConfirmer struct {
	Calls []string
}

func (m *MockConfirmer) SendConfirmation(ctx context.Context, ref string) {
	m.Calls = append(m.Calls, ref)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPerformanceAdminStore extends the read store with the scheduling
// repository surface.
type MockPerformanceAdminStore struct {
	mock.Mock
}

func (m *MockPerformanceAdminStore) GetByID(ctx context.Context, id uint64) (model.Performance, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Performance), args.Error(1)
}

func (m *MockPerformanceAdminStore) Create(ctx context.Context, p model.Performance) (uint64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockPerformanceAdminStore) List(ctx context.Context, showID *uint64) ([]model.Performance, error) {
	args := m.Called(ctx, showID)
	return args.Get(0).([]model.Performance), args.Error(1)
}

func (m *MockPerformanceAdminStore) Update(ctx context.Context, p model.Performance) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPerformanceAdminStore) HasConflicting(ctx context.Context, showID uint64, date, start, end string, excludeID *uint64) (bool, error) {
	args := m.Called(ctx, showID, date, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPerformanceAdminStore) TicketCount(ctx context.Context, id uint64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockPerformanceAdminStore) CancelCascade(ctx context.Context, id uint64, updatedBy uint64) error {
	args := m.Called(ctx, id, updatedBy)
	return args.Error(0)
}

func (m *MockPerformanceAdminStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
