package domain

import (
	"time"
)

// Webinar is the aggregate this service manages. It is a plain value:
// state transitions produce a new Webinar instead of mutating in place,
// so the construction-time checks cover every state the system can hold.
type Webinar struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizerId"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Seats       int       `json:"seats"`
}

// NewWebinar validates and builds a Webinar. Seats must be non-negative.
// Title and the date pair are accepted as-is; end-after-start is a known
// unenforced invariant of the current model.
func NewWebinar(id, organizerID, title string, startDate, endDate time.Time, seats int) (Webinar, error) {
	if seats < 0 {
		return Webinar{}, ValidationError{Message: "seats must be a non-negative integer"}
	}
	return Webinar{
		ID:          id,
		OrganizerID: organizerID,
		Title:       title,
		StartDate:   startDate,
		EndDate:     endDate,
		Seats:       seats,
	}, nil
}

// WithSeats returns a copy of the webinar with the seat count replaced,
// revalidating through the constructor.
func (w Webinar) WithSeats(seats int) (Webinar, error) {
	return NewWebinar(w.ID, w.OrganizerID, w.Title, w.StartDate, w.EndDate, seats)
}
