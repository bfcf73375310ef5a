package getAllEvents

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventHub/internal/clock"
	"eventHub/internal/http-server/handlers/event/getAllEvents/mocks"
	"eventHub/internal/lib/logger/handlers/slogdiscard"
	"eventHub/internal/models"
	"eventHub/internal/storage"

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
			ShareCode:            "aaaa11112222",
			Title:                "Past Conference",
			Category:             "Technology",
			EventDate:            now.Add(-48 * time.Hour),
			RegistrationDeadline: now.Add(-72 * time.Hour),
			OrganizerID:          7,
		},
		{
			ID:                   2,
			ShareCode:            "bbbb33334444",
			Title:                "Evening Workshop",
			Category:             "Education",
			EventDate:            now.Add(6 * time.Hour),
			RegistrationDeadline: now.Add(2 * time.Hour),
			OrganizerID:          7,
		},
		{
			ID:                   3,
			ShareCode:            "cccc55556666",
			Title:                "Future Meetup",
			Category:             "Technology",
			EventDate:            now.Add(96 * time.Hour),
			RegistrationDeadline: now.Add(48 * time.Hour),
			OrganizerID:          8,
		},
	}
}

func TestGetAllEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		mockSetup      func(lister *mocks.EventsLister)
		expectedStatus int
		check          func(t *testing.T, resp EventsResponse)
		expectedBody   string
	}{
		{
			name: "All events carry status badges",
			url:  "/events",
			mockSetup: func(lister *mocks.EventsLister) {
				lister.On("AllEvents", mock.Anything, storage.EventFilter{Now: now}).
					Return(sampleEvents(), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp EventsResponse) {
				require.Len(t, resp.Events, 3)
				assert.Equal(t, "completed", string(resp.Events[0].Status))
				assert.Equal(t, "today", string(resp.Events[1].Status))
				assert.Equal(t, "upcoming", string(resp.Events[2].Status))
			},
		},
		{
			name: "Upcoming filter is forwarded",
			url:  "/events?filter=upcoming",
			mockSetup: func(lister *mocks.EventsLister) {
				lister.On("AllEvents", mock.Anything, storage.EventFilter{When: "upcoming", Now: now}).
					Return(sampleEvents()[2:], nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp EventsResponse) {
				require.Len(t, resp.Events, 1)
				assert.Equal(t, int64(3), resp.Events[0].ID)
			},
		},
		{
			name: "Category and search are forwarded",
			url:  "/events?category=Technology&search=meetup",
			mockSetup: func(lister *mocks.EventsLister) {
				lister.On("AllEvents", mock.Anything, storage.EventFilter{
					Now:      now,
					Category: "Technology",
					Search:   "meetup",
				}).Return(sampleEvents()[2:], nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp EventsResponse) {
				require.Len(t, resp.Events, 1)
			},
		},
		{
			name:           "Invalid filter value",
			url:            "/events?filter=yesterday",
			mockSetup:      func(lister *mocks.EventsLister) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"filter must be upcoming or past"}`,
		},
		{
			name: "Empty result",
			url:  "/events?filter=past",
			mockSetup: func(lister *mocks.EventsLister) {
				lister.On("AllEvents", mock.Anything, storage.EventFilter{When: "past", Now: now}).
					Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, resp EventsResponse) {
				assert.Empty(t, resp.Events)
			},
		},
		{
			name: "Storage error",
			url:  "/events",
			mockSetup: func(lister *mocks.EventsLister) {
				lister.On("AllEvents", mock.Anything, storage.EventFilter{Now: now}).
					Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get events"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewEventsLister(t)
			tc.mockSetup(lister)

			handler := New(logger, lister, clock.NewFixed(now))

			req, err := http.NewRequest("GET", tc.url, nil)
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Get("/events", handler)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
				return
			}

			var resp EventsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			tc.check(t, resp)
		})
	}
}
