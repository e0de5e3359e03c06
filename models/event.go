package models

import "time"

// Wire layouts of event dates and times.
const (
	EventDateLayout = "2006-01-02"
	EventTimeLayout = "15:04"
)

// Event is a scheduled occurrence at a location, owned by an organizer.
//
// Only the base price is persisted; the price tickets are sold at is derived
// from it and the current sale percentage, see [Event.Price].
type Event struct {
	ID        int64
	Name      string
	EventType string
	EventDate time.Time

	// EventTime is the start time in "HH:MM" form. Empty when unknown.
	EventTime string

	LocationID   int64
	LocationName string

	// TicketsAvailable is the number of tickets left for sale. Never negative.
	TicketsAvailable int

	// BasePrice is the price before any sale discount.
	BasePrice Money

	// OnSale is the discount in percent, 0..100.
	OnSale int

	OrganizerID int64
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "events"
}

// Price returns the current ticket price with the sale discount applied.
func (e Event) Price() Money {
	return e.BasePrice.Discount(e.OnSale)
}

// EventRequest is the body used to create or update an event.
// Location and Organizer are identifiers.
type EventRequest struct {
	Name      string `json:"name"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
	Location  int64  `json:"location"`
	Price     Money  `json:"price"`
	Organizer int64  `json:"organizer"`
	OnSale    int    `json:"on_sale"`

	// OriginalPrice is the undiscounted price, as reported by
	// EventResponse. When set it takes precedence over Price.
	OriginalPrice *Money `json:"original_price,omitempty"`
}

// BasePrice returns the undiscounted price the request asks for: the
// original price when present, Price otherwise.
func (r EventRequest) BasePrice() Money {
	if r.OriginalPrice != nil {
		return *r.OriginalPrice
	}
	return r.Price
}

// EventResponse is the public representation of an event.
//
// Price is the current (discounted) price, OriginalPrice the base price.
type EventResponse struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	EventType        string `json:"event_type"`
	EventDate        string `json:"event_date"`
	EventTime        string `json:"event_time,omitempty"`
	Location         int64  `json:"location"`
	LocationName     string `json:"location_name"`
	TicketsAvailable int    `json:"tickets_available"`
	Price            Money  `json:"price"`
	OriginalPrice    Money  `json:"original_price"`
	OnSale           int    `json:"on_sale"`
	Organizer        int64  `json:"organizer"`
}
