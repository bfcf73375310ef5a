package getMyEvents

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventHub/internal/clock"
	"eventHub/internal/http-server/handlers/event/getMyEvents/mocks"
	"eventHub/internal/http-server/middleware/mwauth"
	"eventHub/internal/lib/logger/handlers/slogdiscard"
	"eventHub/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func sampleEvents() []models.Event {
	return []models.Event{
		{
			ID:                   1,
			Title:                "Past Conference",
			EventDate:            now.Add(-48 * time.Hour),
			RegistrationDeadline: now.Add(-72 * time.Hour),
			IsRegistered:         true,
		},
		{
			ID:                   2,
			Title:                "Future Meetup",
			EventDate:            now.Add(96 * time.Hour),
			RegistrationDeadline: now.Add(48 * time.Hour),
			IsRegistered:         true,
		},
	}
}

func TestGetMyEventsHandlers(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	t.Run("registered events with badges", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewUserEventsProvider(t)
		provider.On("RegisteredEvents", mock.Anything, int64(42)).Return(sampleEvents(), nil)

		handler := NewRegistered(logger, provider, clock.NewFixed(now))

		rr := serve(t, handler, "/my/registered", "Bearer user:42")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp EventsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		require.Len(t, resp.Events, 2)
		assert.Equal(t, "completed", string(resp.Events[0].Status))
		assert.Equal(t, "upcoming", string(resp.Events[1].Status))
	})

	t.Run("organized events", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewUserEventsProvider(t)
		provider.On("OrganizedEvents", mock.Anything, int64(7)).Return(sampleEvents()[:1], nil)

		handler := NewOrganized(logger, provider, clock.NewFixed(now))

		rr := serve(t, handler, "/my/organized", "Bearer user:7")

		require.Equal(t, http.StatusOK, rr.Code)

		var resp EventsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

		require.Len(t, resp.Events, 1)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewUserEventsProvider(t)

		handler := NewRegistered(logger, provider, clock.NewFixed(now))

		rr := serve(t, handler, "/my/registered", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"authentication required"}`, rr.Body.String())
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewUserEventsProvider(t)
		provider.On("RegisteredEvents", mock.Anything, int64(42)).Return(nil, assert.AnError)

		handler := NewRegistered(logger, provider, clock.NewFixed(now))

		rr := serve(t, handler, "/my/registered", "Bearer user:42")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func serve(t *testing.T, handler http.HandlerFunc, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)

	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	router := chi.NewRouter()
	router.Use(mwauth.New())
	router.Get(path, handler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}
