package webinar

import (
	"time"
)

// SeatsRequest is the inbound payload for a seat-change request.
// Seats is a pointer so a missing or null value can be told apart from zero.
type SeatsRequest struct {
	Seats *float64 `json:"seats"`
}

// SeatsResponse acknowledges a successful seat change.
type SeatsResponse struct {
	Message string `json:"message"`
}

// Event is broadcast on the signal channel after a successful seat change.
type Event struct {
	WebinarID string    `json:"webinarId"`
	Seats     int       `json:"seats"`
	Timestamp time.Time `json:"timestamp"`
}

// EventChannel returns the pubsub channel carrying events for one webinar.
func EventChannel(webinarID string) string {
	return "webinar:" + webinarID
}
