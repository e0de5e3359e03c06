package models

// Notification is a single email addressed to a user.
type Notification struct {
	UserID  int64  `json:"user_id"`
	EventID int64  `json:"event_id"`
	Email   string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"text"`
}
