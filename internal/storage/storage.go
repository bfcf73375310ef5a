package storage

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventFull          = errors.New("event is full")
	ErrAlreadyRegistered  = errors.New("user already registered for this event")
	ErrNotRegistered      = errors.New("user is not registered for this event")
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrNotOrganizer       = errors.New("user is not the event organizer")
)

// EventFilter narrows event listings. The zero value selects every event.
type EventFilter struct {
	When     string // "", "upcoming" or "past", relative to Now
	Now      time.Time
	Category string
	Search   string
}
