package service

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-ticketing/internal/model"
	"github.com/iliyamo/venue-ticketing/internal/repository"
)

// anyQuery lets expectations match by order instead of SQL text; the
// statements themselves are covered by the repository layer.
var anyQuery = sqlmock.QueryMatcherFunc(func(expected, actual string) error { return nil })

func newMinter(t *testing.T) (*SQLTicketMinter, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(anyQuery))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &SQLTicketMinter{
		DB:      db,
		Tickets: repository.NewTicketRepo(db),
		Seats:   repository.NewReservedSeatRepo(db),
	}, mock
}

func seatUnit(row, seat int) TicketUnit {
	return TicketUnit{
		Ticket:        model.Ticket{PerformanceID: 11, UserID: 7, QRCode: "BK20260314ABCDEF"},
		Seat:          &SeatSelection{Row: row, Seat: seat},
		SeatingPlanID: 9,
	}
}

func TestMintBooking_CommitsAllUnits(t *testing.T) {
	minter, mock := newMinter(t)

	mock.ExpectBegin()
	// unit 1: seat free, ticket insert, seat insert
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(501, 1))
	// unit 2
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(502, 1))
	mock.ExpectCommit()

	out, err := minter.MintBooking(context.Background(), []TicketUnit{seatUnit(2, 3), seatUnit(2, 4)})

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, uint64(101), out[0].ID)
	assert.Equal(t, uint64(102), out[1].ID)
	assert.Len(t, out[0].ReservedSeats, 1)
	assert.Equal(t, uint64(501), out[0].ReservedSeats[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMintBooking_SeatConflictRollsBackEverything(t *testing.T) {
	minter, mock := newMinter(t)

	mock.ExpectBegin()
	// unit 1 succeeds
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(501, 1))
	// unit 2: seat already held, nothing of the booking survives
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	out, err := minter.MintBooking(context.Background(), []TicketUnit{seatUnit(2, 3), seatUnit(2, 4)})

	assert.ErrorIs(t, err, repository.ErrSeatTaken)
	assert.Nil(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMintBooking_GeneralAdmissionSkipsSeatChecks(t *testing.T) {
	minter, mock := newMinter(t)

	mock.ExpectBegin()
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectCommit()

	unit := TicketUnit{Ticket: model.Ticket{PerformanceID: 11, UserID: 7, QRCode: "BK20260314ABCDEF"}}
	out, err := minter.MintBooking(context.Background(), []TicketUnit{unit})

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Empty(t, out[0].ReservedSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
