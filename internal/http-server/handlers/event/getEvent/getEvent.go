package getEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventHub/internal/access"
	"eventHub/internal/clock"
	"eventHub/internal/eligibility"
	"eventHub/internal/http-server/middleware/mwauth"
	"eventHub/internal/lib/api/response"
	"eventHub/internal/lib/logger/sl"
	"eventHub/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type EventResponse struct {
	response.Response
	Event    *models.Event        `json:"event"`
	Status   eligibility.Status   `json:"event_status"`
	Capacity eligibility.Capacity `json:"capacity"`
	Decision eligibility.Decision `json:"registration_decision"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventResolver
type EventResolver interface {
	Resolve(ctx context.Context, ref string, viewer models.Viewer) (*models.Event, error)
}

// New serves both /events/{ref} access paths: a numeric ID and a share
// code resolve to the same snapshot and the same eligibility evaluation.
func New(log *slog.Logger, resolver EventResolver, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log = log.With(slog.String("op", op))

		ref := chi.URLParam(r, "ref")
		if ref == "" {
			log.Error("event reference is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event reference is required"))
			return
		}

		log = log.With(slog.String("ref", ref))

		viewer := mwauth.Viewer(r.Context())

		event, err := resolver.Resolve(r.Context(), ref, viewer)
		if err != nil {
			if errors.Is(err, access.ErrNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to resolve event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event"))
			return
		}

		log.Info("event resolved", slog.Int64("event_id", event.ID))

		responseOK(w, r, event, viewer, clk)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event, viewer models.Viewer, clk clock.Clock) {
	now := clk.Now()

	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    event,
		Status:   eligibility.ComputeStatus(event, now),
		Capacity: eligibility.ComputeCapacity(event),
		Decision: eligibility.ComputeDecision(event, viewer, now),
	})
}
