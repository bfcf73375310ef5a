package getAllEvents

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventHub/internal/clock"
	"eventHub/internal/eligibility"
	"eventHub/internal/lib/api/response"
	"eventHub/internal/lib/logger/sl"
	"eventHub/internal/models"
	"eventHub/internal/storage"

	"github.com/go-chi/render"
)

// EventSummary carries the engine-computed status badge alongside the
// event, so list views never recompute it from dates.
type EventSummary struct {
	models.Event
	Status eligibility.Status `json:"event_status"`
}

type EventsResponse struct {
	response.Response
	Events []EventSummary `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsLister
type EventsLister interface {
	AllEvents(ctx context.Context, filter storage.EventFilter) ([]models.Event, error)
}

func New(log *slog.Logger, lister EventsLister, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log = log.With(slog.String("op", op))

		now := clk.Now()

		filter := storage.EventFilter{
			When:     r.URL.Query().Get("filter"),
			Now:      now,
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}

		if filter.When != "" && filter.When != "upcoming" && filter.When != "past" {
			log.Error("invalid filter value", slog.String("filter", filter.When))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("filter must be upcoming or past"))
			return
		}

		events, err := lister.AllEvents(r.Context(), filter)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events retrieved successfully", slog.Int("count", len(events)))

		responseOK(w, r, events, now)
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
