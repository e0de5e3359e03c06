package models

// Location is a venue events take place at. Capacity bounds the number of
// tickets an event at this location can sell.
type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// TableName returns the name of the database table
// associated with the Location model.
func (l Location) TableName() string {
	return "locations"
}

// LocationRequest is the body used to create or update a location.
type LocationRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}
