// Package eligibility is the single source of truth for event lifecycle
// status and registration decisions. Every surface that displays or gates
// registration consumes this package instead of comparing dates inline.
package eligibility

import (
	"errors"
	"time"

	"eventHub/internal/models"
)

// Status is the lifecycle phase of an event at a given instant.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusToday     Status = "today"
	StatusCompleted Status = "completed"
)

// Capacity describes whether an event has room for more registrants.
type Capacity string

const (
	CapacityUnbounded Capacity = "unbounded"
	CapacityAvailable Capacity = "available"
	CapacityFull      Capacity = "full"
)

// Decision is the outcome of evaluating a registration attempt for a viewer.
type Decision string

const (
	DecisionOpen              Decision = "open"
	DecisionClosed            Decision = "closed"
	DecisionFull              Decision = "full"
	DecisionAlreadyRegistered Decision = "already_registered"
	DecisionRequiresAuth      Decision = "requires_authentication"
)

var (
	ErrEventDateInPast    = errors.New("event date must be in the future")
	ErrDeadlineInPast     = errors.New("registration deadline must be in the future")
	ErrDeadlineAfterEvent = errors.New("registration deadline must be before the event date")
)

// ComputeStatus derives the lifecycle status of an event at the given
// instant. "Today" uses the calendar day in now's location; callers pass
// time in the zone they present dates in.
func ComputeStatus(event *models.Event, now time.Time) Status {
	if !now.Before(event.EventDate) {
		return StatusCompleted
	}

	ny, nm, nd := now.Date()
	ey, em, ed := event.EventDate.In(now.Location()).Date()
	if ny == ey && nm == em && nd == ed {
		return StatusToday
	}

	return StatusUpcoming
}

// WindowOpen reports whether new registrations are accepted at the given
// instant. The deadline and the event date are independent gates: a deadline
// in the future does not keep the window open once the event has started.
func WindowOpen(event *models.Event, now time.Time) bool {
	return now.Before(event.RegistrationDeadline) && now.Before(event.EventDate)
}

// ComputeCapacity derives the capacity state from the participant counters.
func ComputeCapacity(event *models.Event) Capacity {
	if event.MaxParticipants == nil {
		return CapacityUnbounded
	}
	if event.CurrentParticipants < *event.MaxParticipants {
		return CapacityAvailable
	}
	return CapacityFull
}

// ComputeDecision evaluates whether the viewer may register for the event
// at the given instant. The gates apply in a fixed order: authentication,
// existing registration, registration window, capacity. The window is the
// more fundamental gate, so a full event whose deadline has also passed
// reports Closed rather than Full.
func ComputeDecision(event *models.Event, viewer models.Viewer, now time.Time) Decision {
	if !viewer.Authenticated {
		return DecisionRequiresAuth
	}
	if event.IsRegistered {
		return DecisionAlreadyRegistered
	}
	if !WindowOpen(event, now) {
		return DecisionClosed
	}
	if ComputeCapacity(event) == CapacityFull {
		return DecisionFull
	}
	return DecisionOpen
}

// ValidateSchedule checks the creation-time invariants on an event's dates.
// These are enforced once at creation and not re-checked on later
// evaluations, which instead treat malformed dates defensively.
func ValidateSchedule(eventDate, registrationDeadline, now time.Time) error {
	if !eventDate.After(now) {
		return ErrEventDateInPast
	}
	if !registrationDeadline.After(now) {
		return ErrDeadlineInPast
	}
	if !registrationDeadline.Before(eventDate) {
		return ErrDeadlineAfterEvent
	}
	return nil
}
