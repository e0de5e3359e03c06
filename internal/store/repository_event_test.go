package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-event-organizer/internal/logger"
	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventDate = time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "event_type", "event_date", "event_time", "location_id",
		"location_name", "tickets_available", "price_cents", "on_sale", "organizer_id",
	})
}

func TestEventRepository_Create(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	event := models.Event{
		Name: "Concert", EventType: "music", EventDate: eventDate, EventTime: "",
		LocationID: 2, TicketsAvailable: 100, BasePrice: 2500, OrganizerID: 5,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).
		WithArgs("Concert", "music", eventDate, "", int64(2), 100, int64(2500), 0, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
		WithArgs(int64(10)).
		WillReturnRows(eventRows().AddRow(10, "Concert", "music", eventDate, "", 2, "Arena", 100, 2500, 0, 5))

	created, err := repo.Create(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, "Arena", created.LocationName)
	assert.Equal(t, models.Money(2500), created.BasePrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Create_UnknownLocation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO events")).WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.Create(context.Background(), models.Event{Name: "x"})
	assert.ErrorIs(t, err, ErrReferencedRowNotFound)
}

func TestEventRepository_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WithArgs(int64(1)).
			WillReturnRows(eventRows().AddRow(1, "Play", "theatre", eventDate, "18:00", 3, "Hall", 7, 1000, 20, 4))

		event, err := repo.FindByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "18:00", event.EventTime)
		assert.Equal(t, 20, event.OnSale)
		assert.Equal(t, models.Money(800), event.Price())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).WillReturnRows(eventRows())

		_, err := repo.FindByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventRepository_FindByIDForUpdate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF e")).
		WithArgs(int64(1)).
		WillReturnRows(eventRows().AddRow(1, "Play", "theatre", eventDate, "", 3, "Hall", 7, 1000, 0, 4))

	event, err := repo.FindByIDForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, event.TicketsAvailable)
}

func TestEventRepository_FindByOrganizer(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.organizer_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(eventRows().
			AddRow(1, "A", "t", eventDate, "", 3, "Hall", 7, 1000, 0, 4).
			AddRow(2, "B", "t", eventDate, "", 3, "Hall", 7, 1000, 0, 4))

	events, err := repo.FindByOrganizer(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEventRepository_Update(t *testing.T) {
	event := models.Event{ID: 1, Name: "Play", EventType: "theatre", EventDate: eventDate, LocationID: 3, TicketsAvailable: 5, BasePrice: 1000, OrganizerID: 4}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE e.id = $1")).
			WillReturnRows(eventRows().AddRow(1, "Play", "theatre", eventDate, "", 3, "Hall", 5, 1000, 0, 4))

		updated, err := repo.Update(context.Background(), event)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.TicketsAvailable)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET")).WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(context.Background(), event)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventRepository_AdjustTicketsAvailable(t *testing.T) {
	t.Run("would go negative", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("tickets_available = tickets_available + $1")).
			WithArgs(-3, int64(1)).
			WillReturnError(pgError(pgerrcode.CheckViolation))

		assert.ErrorIs(t, repo.AdjustTicketsAvailable(context.Background(), 1, -3), ErrNotEnoughTickets)
	})

	t.Run("unknown event", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewEventRepository(db, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE events")).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.AdjustTicketsAvailable(context.Background(), 1, 1), ErrEventNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewEventRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
