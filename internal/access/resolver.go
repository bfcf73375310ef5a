// Package access resolves an external event reference, either a numeric
// primary ID or an opaque share code, to the canonical event snapshot. Both
// paths return identical event data and feed the same eligibility engine;
// no caller may apply different rules depending on how the event was reached.
package access

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"eventHub/internal/models"
	"eventHub/internal/storage"
)

// ErrNotFound covers every resolution failure: unknown ID, unknown or
// format-invalid share code, deleted event. The resolver does not
// distinguish "never existed" from "deleted".
var ErrNotFound = errors.New("event not found")

const (
	shareCodeMinLen = 6
	shareCodeMaxLen = 64
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventProvider
type EventProvider interface {
	EventByID(ctx context.Context, id int64, viewer models.Viewer) (*models.Event, error)
	EventByShareCode(ctx context.Context, code string, viewer models.Viewer) (*models.Event, error)
}

type Resolver struct {
	provider EventProvider
}

func New(provider EventProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve maps ref to an event snapshot with IsRegistered populated
// relative to the viewer. Decimal refs resolve by primary ID, everything
// else by share code.
func (r *Resolver) Resolve(ctx context.Context, ref string, viewer models.Viewer) (*models.Event, error) {
	ref = strings.TrimSpace(ref)

	var (
		event *models.Event
		err   error
	)

	switch {
	case ref == "":
		return nil, ErrNotFound
	case isNumeric(ref):
		id, parseErr := strconv.ParseInt(ref, 10, 64)
		if parseErr != nil {
			return nil, ErrNotFound
		}
		event, err = r.provider.EventByID(ctx, id, viewer)
	case validShareCode(ref):
		event, err = r.provider.EventByShareCode(ctx, ref, viewer)
	default:
		return nil, ErrNotFound
	}

	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !viewer.Authenticated {
		event.IsRegistered = false
	}

	return event, nil
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// validShareCode is a cheap format gate so obviously malformed refs fail
// as NotFound without a round trip to the store.
func validShareCode(s string) bool {
	if len(s) < shareCodeMinLen || len(s) > shareCodeMaxLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
