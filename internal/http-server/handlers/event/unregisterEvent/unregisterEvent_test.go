package unregisterEvent

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventHub/internal/access"
	"eventHub/internal/clock"
	"eventHub/internal/http-server/handlers/event/unregisterEvent/mocks"
	"eventHub/internal/http-server/middleware/mwauth"
	"eventHub/internal/lib/logger/handlers/slogdiscard"
	"eventHub/internal/models"
	"eventHub/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func registeredEvent() *models.Event {
	return &models.Event{
		ID:                   17,
		ShareCode:            "a1b2c3d4e5f6a7b8",
		Title:                "Go Meetup",
		EventDate:            now.Add(48 * time.Hour),
		RegistrationDeadline: now.Add(24 * time.Hour),
		CurrentParticipants:  3,
		OrganizerID:          7,
		IsRegistered:         true,
	}
}

func TestUnregisterEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	viewer := models.User(42)

	testCases := []struct {
		name           string
		ref            string
		authHeader     string
		mockSetup      func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:       "Success",
			ref:        "17",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				fresh := registeredEvent()
				fresh.CurrentParticipants = 2
				fresh.IsRegistered = false

				resolver.On("Resolve", mock.Anything, "17", viewer).Return(registeredEvent(), nil).Once()
				unregistrar.On("UnregisterUser", mock.Anything, int64(17), int64(42)).Return(nil)
				resolver.On("Resolve", mock.Anything, "17", viewer).Return(fresh, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"current_participants":2`)
				assert.Contains(t, body, `"is_registered":false`)
				assert.Contains(t, body, `"registration_decision":"open"`)
			},
		},
		{
			name:       "Allowed after deadline",
			ref:        "17",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				stale := registeredEvent()
				stale.RegistrationDeadline = now.Add(-time.Hour)

				fresh := registeredEvent()
				fresh.RegistrationDeadline = now.Add(-time.Hour)
				fresh.CurrentParticipants = 2
				fresh.IsRegistered = false

				resolver.On("Resolve", mock.Anything, "17", viewer).Return(stale, nil).Once()
				unregistrar.On("UnregisterUser", mock.Anything, int64(17), int64(42)).Return(nil)
				resolver.On("Resolve", mock.Anything, "17", viewer).Return(fresh, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"registration_decision":"closed"`)
			},
		},
		{
			name:       "Anonymous viewer",
			ref:        "17",
			authHeader: "",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				event := registeredEvent()
				event.IsRegistered = false

				resolver.On("Resolve", mock.Anything, "17", models.Anonymous()).Return(event, nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"authentication required"}`,
		},
		{
			name:       "Not registered",
			ref:        "17",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				event := registeredEvent()
				event.IsRegistered = false

				resolver.On("Resolve", mock.Anything, "17", viewer).Return(event, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"not registered for this event"}`,
		},
		{
			name:       "Event not found",
			ref:        "9999",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				resolver.On("Resolve", mock.Anything, "9999", viewer).Return(nil, access.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:       "Store reports not registered on stale snapshot",
			ref:        "17",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				resolver.On("Resolve", mock.Anything, "17", viewer).Return(registeredEvent(), nil)
				unregistrar.On("UnregisterUser", mock.Anything, int64(17), int64(42)).Return(storage.ErrNotRegistered)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"not registered for this event"}`,
		},
		{
			name:       "Store error",
			ref:        "17",
			authHeader: "Bearer user:42",
			mockSetup: func(resolver *mocks.EventResolver, unregistrar *mocks.UserUnregistrar) {
				resolver.On("Resolve", mock.Anything, "17", viewer).Return(registeredEvent(), nil)
				unregistrar.On("UnregisterUser", mock.Anything, int64(17), int64(42)).Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to unregister from event"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := mocks.NewEventResolver(t)
			unregistrar := mocks.NewUserUnregistrar(t)
			tc.mockSetup(resolver, unregistrar)

			handler := New(logger, resolver, unregistrar, clock.NewFixed(now))

			req, err := http.NewRequest("POST", "/events/"+tc.ref+"/unregister", nil)
			require.NoError(t, err)

			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			router := chi.NewRouter()
			router.Use(mwauth.New())
			router.Post("/events/{ref}/unregister", handler)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
