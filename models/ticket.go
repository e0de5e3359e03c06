package models

import "time"

// Ticket is a purchase record linking one user to one event at the price
// that was current at purchase time.
type Ticket struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	EventID       int64     `json:"event_id"`
	PurchasePrice Money     `json:"purchase_price"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// TableName returns the name of the database table
// associated with the Ticket model.
func (t Ticket) TableName() string {
	return "tickets"
}

// TicketRequest is the body of purchase and exchange requests. Any price sent
// by the client is ignored.
type TicketRequest struct {
	UserID  int64 `json:"user_id"`
	EventID int64 `json:"event_id"`
}

// TicketDetails is a ticket joined with the event and location fields shown
// on exported tickets.
type TicketDetails struct {
	Ticket

	EventName    string
	EventDate    time.Time
	EventTime    string
	LocationName string
}
