// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-event-organizer/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	usersTable     = "users"
	locationsTable = "locations"
	eventsTable    = "events"
	ticketsTable   = "tickets"
	wishlistsTable = "wishlists"

	// eventTimeColumn renders the optional TIME column as "HH:MM" or "".
	eventTimeColumn = "COALESCE(to_char(e.event_time, 'HH24:MI'), '')"
)

var (
	userColumns = []string{"id", "username", "password_hash", "name", "email", "user_type", "created_at"}

	locationColumns = []string{"id", "name", "address", "capacity"}

	eventColumns = []string{
		"e.id", "e.name", "e.event_type", "e.event_date", eventTimeColumn,
		"e.location_id", "l.name", "e.tickets_available", "e.price_cents",
		"e.on_sale", "e.organizer_id",
	}

	ticketColumns = []string{"id", "user_id", "event_id", "purchase_price_cents", "purchased_at"}
)

// eventTimeValue stores "" as NULL.
func eventTimeValue(eventTime string) sq.Sqlizer {
	return sq.Expr("NULLIF(?, '')::time", eventTime)
}

func prefixed(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = prefix + "." + c
	}
	return out
}

// ── users ────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.Insert(usersTable).
		Columns("username", "password_hash", "name", "email", "user_type").
		Values(user.Username, user.PasswordHash, user.Name, user.Email, string(user.Role)).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

func selectUsers(where sq.Sqlizer) sq.SelectBuilder {
	builder := psql.Select(userColumns...).From(usersTable).OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder
}

func buildSelectUsersQuery(where sq.Sqlizer) (string, []any, error) {
	return selectUsers(where).ToSql()
}

// selectUserForUpdate locks the user row, which also blocks concurrent
// inserts of tickets referencing it.
func selectUserForUpdate(id int64) sq.SelectBuilder {
	return selectUsers(sq.Eq{"id": id}).Suffix("FOR UPDATE")
}

func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.Update(usersTable).
		Set("username", user.Username).
		Set("password_hash", user.PasswordHash).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("user_type", string(user.Role)).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
}

func buildDeleteByIDQuery(table string, id int64) (string, []any, error) {
	return psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
}

// ── locations ────────────────────────────────────────────────────────────────

func buildInsertLocationQuery(location models.Location) (string, []any, error) {
	return psql.Insert(locationsTable).
		Columns("name", "address", "capacity").
		Values(location.Name, location.Address, location.Capacity).
		Suffix("RETURNING " + strings.Join(locationColumns, ", ")).
		ToSql()
}

func buildSelectLocationsQuery(where sq.Sqlizer) (string, []any, error) {
	builder := psql.Select(locationColumns...).From(locationsTable).OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder.ToSql()
}

func buildUpdateLocationQuery(location models.Location) (string, []any, error) {
	return psql.Update(locationsTable).
		Set("name", location.Name).
		Set("address", location.Address).
		Set("capacity", location.Capacity).
		Where(sq.Eq{"id": location.ID}).
		Suffix("RETURNING " + strings.Join(locationColumns, ", ")).
		ToSql()
}

// ── events ───────────────────────────────────────────────────────────────────

// selectEvents is the base SELECT of events joined with their location name.
func selectEvents() sq.SelectBuilder {
	return psql.Select(eventColumns...).
		From(eventsTable + " e").
		Join(locationsTable + " l ON l.id = e.location_id")
}

func buildSelectEventsQuery(where sq.Sqlizer) (string, []any, error) {
	builder := selectEvents().OrderBy("e.event_date", "e.id")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder.ToSql()
}

func buildSelectEventForUpdateQuery(id int64) (string, []any, error) {
	return selectEvents().
		Where(sq.Eq{"e.id": id}).
		Suffix("FOR UPDATE OF e").
		ToSql()
}

func buildSelectWishlistEventsQuery(userID int64) (string, []any, error) {
	return selectEvents().
		Join(wishlistsTable + " w ON w.event_id = e.id").
		Where(sq.Eq{"w.user_id": userID}).
		OrderBy("e.event_date", "e.id").
		ToSql()
}

func buildInsertEventQuery(event models.Event) (string, []any, error) {
	return psql.Insert(eventsTable).
		Columns("name", "event_type", "event_date", "event_time", "location_id",
			"tickets_available", "price_cents", "on_sale", "organizer_id").
		Values(event.Name, event.EventType, event.EventDate, eventTimeValue(event.EventTime), event.LocationID,
			event.TicketsAvailable, int64(event.BasePrice), event.OnSale, event.OrganizerID).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateEventQuery(event models.Event) (string, []any, error) {
	return psql.Update(eventsTable).
		Set("name", event.Name).
		Set("event_type", event.EventType).
		Set("event_date", event.EventDate).
		Set("event_time", eventTimeValue(event.EventTime)).
		Set("location_id", event.LocationID).
		Set("tickets_available", event.TicketsAvailable).
		Set("price_cents", int64(event.BasePrice)).
		Set("on_sale", event.OnSale).
		Set("organizer_id", event.OrganizerID).
		Where(sq.Eq{"id": event.ID}).
		ToSql()
}

func buildAdjustTicketsAvailableQuery(id int64, delta int) (string, []any, error) {
	return psql.Update(eventsTable).
		Set("tickets_available", sq.Expr("tickets_available + ?", delta)).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// ── wishlists ────────────────────────────────────────────────────────────────

func buildInsertWishlistQuery(userID, eventID int64) (string, []any, error) {
	return psql.Insert(wishlistsTable).
		Columns("user_id", "event_id").
		Values(userID, eventID).
		Suffix("ON CONFLICT (user_id, event_id) DO NOTHING").
		ToSql()
}

func buildDeleteWishlistQuery(userID, eventID int64) (string, []any, error) {
	return psql.Delete(wishlistsTable).
		Where(sq.And{sq.Eq{"user_id": userID}, sq.Eq{"event_id": eventID}}).
		ToSql()
}

func buildSelectWishlistUsersQuery(eventID int64) (string, []any, error) {
	return psql.Select(prefixed("u", userColumns)...).
		From(usersTable + " u").
		Join(wishlistsTable + " w ON w.user_id = u.id").
		Where(sq.Eq{"w.event_id": eventID}).
		OrderBy("u.id").
		ToSql()
}

// ── tickets ──────────────────────────────────────────────────────────────────

func buildInsertTicketsQuery(tickets []models.Ticket) (string, []any, error) {
	builder := psql.Insert(ticketsTable).Columns("user_id", "event_id", "purchase_price_cents")
	for _, t := range tickets {
		builder = builder.Values(t.UserID, t.EventID, int64(t.PurchasePrice))
	}
	return builder.Suffix("RETURNING " + strings.Join(ticketColumns, ", ")).ToSql()
}

func selectTickets(where sq.Sqlizer) sq.SelectBuilder {
	builder := psql.Select(ticketColumns...).From(ticketsTable).OrderBy("id")
	if where != nil {
		builder = builder.Where(where)
	}
	return builder
}

func buildSelectTicketsQuery(where sq.Sqlizer) (string, []any, error) {
	return selectTickets(where).ToSql()
}

func selectTicketForUpdate(id int64) sq.SelectBuilder {
	return selectTickets(sq.Eq{"id": id}).Suffix("FOR UPDATE")
}

// buildCountTicketsByUserQuery counts the tickets of a user per event.
func buildCountTicketsByUserQuery(userID int64) (string, []any, error) {
	return psql.Select("event_id", "COUNT(*)").
		From(ticketsTable).
		Where(sq.Eq{"user_id": userID}).
		GroupBy("event_id").
		OrderBy("event_id").
		ToSql()
}

func buildSelectTicketDetailsQuery(id int64) (string, []any, error) {
	return psql.Select(
		"t.id", "t.user_id", "t.event_id", "t.purchase_price_cents", "t.purchased_at",
		"e.name", "e.event_date", eventTimeColumn, "l.name",
	).
		From(ticketsTable + " t").
		Join(eventsTable + " e ON e.id = t.event_id").
		Join(locationsTable + " l ON l.id = e.location_id").
		Where(sq.Eq{"t.id": id}).
		ToSql()
}

func buildCountTicketsByEventQuery(eventID int64) (string, []any, error) {
	return psql.Select("COUNT(*)").From(ticketsTable).Where(sq.Eq{"event_id": eventID}).ToSql()
}

func buildUpdateTicketQuery(ticket models.Ticket) (string, []any, error) {
	return psql.Update(ticketsTable).
		Set("event_id", ticket.EventID).
		Set("purchase_price_cents", int64(ticket.PurchasePrice)).
		Where(sq.Eq{"id": ticket.ID}).
		Suffix("RETURNING " + strings.Join(ticketColumns, ", ")).
		ToSql()
}
