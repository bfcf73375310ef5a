package models

import "time"

type Event struct {
	ID                   int64     `json:"id"`
	ShareCode            string    `json:"share_code"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Location             string    `json:"location"`
	Category             string    `json:"category"`
	EventDate            time.Time `json:"event_date"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	MaxParticipants      *int      `json:"max_participants"`
	CurrentParticipants  int       `json:"current_participants"`
	OrganizerID          int64     `json:"organizer_id"`

	// IsRegistered is relative to the viewer the snapshot was fetched for,
	// not a property of the event itself.
	IsRegistered bool `json:"is_registered"`
}

// Unbounded reports whether the event has no participant limit.
func (e *Event) Unbounded() bool {
	return e.MaxParticipants == nil
}

// OrganizedBy reports whether the given user owns the event.
func (e *Event) OrganizedBy(userID int64) bool {
	return e.OrganizerID == userID
}
