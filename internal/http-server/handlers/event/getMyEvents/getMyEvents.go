package getMyEvents

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventHub/internal/clock"
	"eventHub/internal/eligibility"
	"eventHub/internal/http-server/middleware/mwauth"
	"eventHub/internal/lib/api/response"
	"eventHub/internal/lib/logger/sl"
	"eventHub/internal/models"

	"github.com/go-chi/render"
)

type EventSummary struct {
	models.Event
	Status eligibility.Status `json:"event_status"`
}

type EventsResponse struct {
	response.Response
	Events []EventSummary `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserEventsProvider
type UserEventsProvider interface {
	RegisteredEvents(ctx context.Context, userID int64) ([]models.Event, error)
	OrganizedEvents(ctx context.Context, userID int64) ([]models.Event, error)
}

// NewRegistered lists the events the viewer holds a registration for.
func NewRegistered(log *slog.Logger, provider UserEventsProvider, clk clock.Clock) http.HandlerFunc {
	return newList(log, "handlers.event.getMyEvents.NewRegistered", provider.RegisteredEvents, clk)
}

// NewOrganized lists the events the viewer owns.
func NewOrganized(log *slog.Logger, provider UserEventsProvider, clk clock.Clock) http.HandlerFunc {
	return newList(log, "handlers.event.getMyEvents.NewOrganized", provider.OrganizedEvents, clk)
}

func newList(log *slog.Logger, op string, list func(context.Context, int64) ([]models.Event, error), clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log = log.With(slog.String("op", op))

		viewer := mwauth.Viewer(r.Context())
		if !viewer.Authenticated {
			log.Info("unauthenticated request")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		events, err := list(r.Context(), viewer.UserID)
		if err != nil {
			log.Error("failed to get user events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("user events retrieved", slog.Int("count", len(events)))

		responseOK(w, r, events, clk.Now())
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, events []models.Event, now time.Time) {
	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summaries = append(summaries, EventSummary{
			Event:  event,
			Status: eligibility.ComputeStatus(&event, now),
		})
	}

	render.JSON(w, r, EventsResponse{
		Response: response.OK(),
		Events:   summaries,
	})
}
