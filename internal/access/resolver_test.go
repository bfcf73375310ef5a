package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventHub/internal/access/mocks"
	"eventHub/internal/models"
	"eventHub/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *models.Event {
	return &models.Event{
		ID:                   17,
		ShareCode:            "a1b2c3d4e5f6a7b8",
		Title:                "Go Meetup",
		EventDate:            time.Date(2025, time.June, 1, 18, 0, 0, 0, time.UTC),
		RegistrationDeadline: time.Date(2025, time.May, 30, 18, 0, 0, 0, time.UTC),
		OrganizerID:          7,
	}
}

func TestResolveByID(t *testing.T) {
	t.Parallel()

	viewer := models.User(42)
	event := sampleEvent()
	event.IsRegistered = true

	provider := mocks.NewEventProvider(t)
	provider.On("EventByID", context.Background(), int64(17), viewer).Return(event, nil)

	resolved, err := New(provider).Resolve(context.Background(), "17", viewer)
	require.NoError(t, err)

	assert.Equal(t, event, resolved)
	assert.True(t, resolved.IsRegistered)
}

func TestResolveByShareCode(t *testing.T) {
	t.Parallel()

	viewer := models.User(42)
	event := sampleEvent()

	provider := mocks.NewEventProvider(t)
	provider.On("EventByShareCode", context.Background(), event.ShareCode, viewer).Return(event, nil)

	resolved, err := New(provider).Resolve(context.Background(), event.ShareCode, viewer)
	require.NoError(t, err)

	assert.Equal(t, event, resolved)
}

func TestResolveBothPathsYieldIdenticalEvent(t *testing.T) {
	t.Parallel()

	viewer := models.User(42)

	provider := mocks.NewEventProvider(t)
	provider.On("EventByID", context.Background(), int64(17), viewer).Return(sampleEvent(), nil)
	provider.On("EventByShareCode", context.Background(), sampleEvent().ShareCode, viewer).Return(sampleEvent(), nil)

	resolver := New(provider)

	byID, err := resolver.Resolve(context.Background(), "17", viewer)
	require.NoError(t, err)

	byCode, err := resolver.Resolve(context.Background(), sampleEvent().ShareCode, viewer)
	require.NoError(t, err)

	assert.Equal(t, byID, byCode)
}

func TestResolveAnonymousViewerNeverRegistered(t *testing.T) {
	t.Parallel()

	// Defensive: even if the provider leaks a viewer-relative flag, an
	// anonymous viewer must never see IsRegistered set.
	event := sampleEvent()
	event.IsRegistered = true

	provider := mocks.NewEventProvider(t)
	provider.On("EventByID", context.Background(), int64(17), models.Anonymous()).Return(event, nil)

	resolved, err := New(provider).Resolve(context.Background(), "17", models.Anonymous())
	require.NoError(t, err)

	assert.False(t, resolved.IsRegistered)
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		ref   string
		setup func(provider *mocks.EventProvider)
	}{
		{
			name: "unknown id",
			ref:  "9999",
			setup: func(provider *mocks.EventProvider) {
				provider.On("EventByID", context.Background(), int64(9999), models.Anonymous()).
					Return(nil, storage.ErrEventNotFound)
			},
		},
		{
			name: "unknown share code",
			ref:  "deadbeefdeadbeef",
			setup: func(provider *mocks.EventProvider) {
				provider.On("EventByShareCode", context.Background(), "deadbeefdeadbeef", models.Anonymous()).
					Return(nil, storage.ErrEventNotFound)
			},
		},
		{name: "empty ref", ref: ""},
		{name: "blank ref", ref: "   "},
		{name: "too short for a share code", ref: "ab1"},
		{name: "invalid characters", ref: "not a code!"},
		{name: "numeric overflow", ref: "99999999999999999999999999"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := mocks.NewEventProvider(t)
			if tc.setup != nil {
				tc.setup(provider)
			}

			_, err := New(provider).Resolve(context.Background(), tc.ref, models.Anonymous())

			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolvePropagatesUnexpectedErrors(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection refused")

	provider := mocks.NewEventProvider(t)
	provider.On("EventByID", context.Background(), int64(17), models.Anonymous()).Return(nil, dbErr)

	_, err := New(provider).Resolve(context.Background(), "17", models.Anonymous())

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}
