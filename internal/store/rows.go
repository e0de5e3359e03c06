package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-event-organizer/models"
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name, &user.Email, &role, &user.CreatedAt)
	user.Role = models.Role(role)
	return user, err
}

func scanLocation(row rowScanner) (models.Location, error) {
	var location models.Location
	err := row.Scan(&location.ID, &location.Name, &location.Address, &location.Capacity)
	return location, err
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	var price int64
	err := row.Scan(&event.ID, &event.Name, &event.EventType, &event.EventDate, &event.EventTime,
		&event.LocationID, &event.LocationName, &event.TicketsAvailable, &price,
		&event.OnSale, &event.OrganizerID)
	event.BasePrice = models.Money(price)
	return event, err
}

func scanTicket(row rowScanner) (models.Ticket, error) {
	var ticket models.Ticket
	var price int64
	err := row.Scan(&ticket.ID, &ticket.UserID, &ticket.EventID, &price, &ticket.PurchasedAt)
	ticket.PurchasePrice = models.Money(price)
	return ticket, err
}

func scanTicketDetails(row rowScanner) (models.TicketDetails, error) {
	var details models.TicketDetails
	var price int64
	err := row.Scan(&details.ID, &details.UserID, &details.EventID, &price, &details.PurchasedAt,
		&details.EventName, &details.EventDate, &details.EventTime, &details.LocationName)
	details.PurchasePrice = models.Money(price)
	return details, err
}

// collectRows scans every row with scan and closes rows.
func collectRows[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}
