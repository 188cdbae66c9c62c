package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-ticketing/internal/model"
)

// anyQuery matches expectations by order instead of SQL text so the
// tests pin down control flow, not statement formatting.
var anyQuery = sqlmock.QueryMatcherFunc(func(expected, actual string) error { return nil })

func newMockDB(t *testing.T) (*TicketRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(anyQuery))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTicketRepo(db), mock
}

func statusRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"status"}).AddRow(status)
}

func ticketRow(id uint64, checkedIn, cancelled bool) *sqlmock.Rows {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "performance_id", "user_id", "qr_code", "qr_image_url", "start_time", "end_time",
		"is_checked_in", "cancelled", "price_cents", "quantity", "ticket_price_id",
		"created_by", "updated_by", "created_at", "updated_at",
	}).AddRow(id, 11, 7, "BK20260314ABCDEF", "data:image/png;base64,x", "19:30:00", "22:00:00",
		checkedIn, cancelled, 4500, nil, nil, 7, nil, created, nil)
}

func TestCheckIn_MarksTicket(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("").WillReturnRows(statusRow(model.PerformanceScheduled))
	mock.ExpectQuery("").WillReturnRows(ticketRow(5, false, false))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("").WillReturnRows(ticketRow(5, true, false))

	out, err := repo.CheckIn(context.Background(), 5, 9)

	assert.NoError(t, err)
	assert.True(t, out.IsCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_CancelledTicketRejected(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("").WillReturnRows(statusRow(model.PerformanceScheduled))
	mock.ExpectQuery("").WillReturnRows(ticketRow(5, false, true))
	// No UPDATE may reach the database for a cancelled ticket.

	_, err := repo.CheckIn(context.Background(), 5, 9)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_RepeatIsNoOp(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("").WillReturnRows(statusRow(model.PerformanceScheduled))
	mock.ExpectQuery("").WillReturnRows(ticketRow(5, true, false))
	// An already-checked-in ticket is returned as-is, without a second
	// UPDATE overwriting updated_by.

	out, err := repo.CheckIn(context.Background(), 5, 9)

	assert.NoError(t, err)
	assert.True(t, out.IsCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_CancelledPerformanceRejected(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("").WillReturnRows(statusRow(model.PerformanceCancelled))

	_, err := repo.CheckIn(context.Background(), 5, 9)

	assert.ErrorIs(t, err, ErrPerformanceCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByBookingRef_AppliesOnlySuppliedFlags(t *testing.T) {
	repo, mock := newMockDB(t)
	checkedIn := true

	mock.ExpectQuery("").WillReturnRows(ticketRow(5, false, false))
	mock.ExpectQuery("").WillReturnRows(statusRow(model.PerformanceScheduled))
	mock.ExpectExec("").
		WithArgs(&checkedIn, (*bool)(nil), uint64(9), "BK20260314ABCDEF").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateByBookingRef(context.Background(), "BK20260314ABCDEF", &checkedIn, nil, 9)

	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByBookingRef_UnknownReference(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	checkedIn := true
	_, err := repo.UpdateByBookingRef(context.Background(), "BK00000000FFFFFF", &checkedIn, nil, 9)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
