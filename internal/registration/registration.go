// Package registration applies register/unregister transitions to an event
// snapshot, enforcing the eligibility rules. It never mutates its inputs:
// a successful transition returns a new snapshot, and the authoritative
// store remains responsible for making the counter update atomic.
package registration

import (
	"fmt"
	"time"

	"eventHub/internal/eligibility"
	"eventHub/internal/models"
)

// Reason identifies why a transition was rejected.
type Reason string

const (
	ReasonClosed            Reason = "closed"
	ReasonFull              Reason = "full"
	ReasonAlreadyRegistered Reason = "already_registered"
	ReasonRequiresAuth      Reason = "requires_authentication"
	ReasonNotRegistered     Reason = "not_registered"
)

// RejectedError is the business-rule rejection of a transition. It is an
// expected, recoverable outcome; callers should re-fetch the snapshot and
// re-run the eligibility engine before retrying.
type RejectedError struct {
	Reason Reason
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("registration rejected: %s", e.Reason)
}

func reject(r Reason) (*models.Event, error) {
	return nil, &RejectedError{Reason: r}
}

// Register attempts to register the viewer for the event at the given
// instant. Valid only when the eligibility decision is Open; any other
// decision maps to a RejectedError with the matching reason, so invoking
// it for an already-registered viewer is idempotent at the decision layer.
func Register(event *models.Event, viewer models.Viewer, now time.Time) (*models.Event, error) {
	switch eligibility.ComputeDecision(event, viewer, now) {
	case eligibility.DecisionRequiresAuth:
		return reject(ReasonRequiresAuth)
	case eligibility.DecisionAlreadyRegistered:
		return reject(ReasonAlreadyRegistered)
	case eligibility.DecisionClosed:
		return reject(ReasonClosed)
	case eligibility.DecisionFull:
		return reject(ReasonFull)
	}

	updated := *event
	updated.CurrentParticipants++
	updated.IsRegistered = true

	return &updated, nil
}

// Unregister withdraws the viewer's registration. No window or capacity
// check applies: a registrant may withdraw even after the deadline or after
// the event has nominally started. Unregistering while not registered is an
// error rather than a silent success, so callers can detect upstream bugs.
func Unregister(event *models.Event, viewer models.Viewer) (*models.Event, error) {
	if !viewer.Authenticated {
		return reject(ReasonRequiresAuth)
	}
	if !event.IsRegistered {
		return reject(ReasonNotRegistered)
	}

	updated := *event
	if updated.CurrentParticipants > 0 {
		updated.CurrentParticipants--
	}
	updated.IsRegistered = false

	return &updated, nil
}
