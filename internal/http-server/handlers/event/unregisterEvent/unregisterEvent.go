package unregisterEvent

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
	"eventHub/internal/registration"
	"eventHub/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type UnregisterResponse struct {
	response.Response
	Event    *models.Event        `json:"event"`
	Decision eligibility.Decision `json:"registration_decision"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventResolver
type EventResolver interface {
	Resolve(ctx context.Context, ref string, viewer models.Viewer) (*models.Event, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserUnregistrar
type UserUnregistrar interface {
	UnregisterUser(ctx context.Context, eventID, userID int64) error
}

// New withdraws the viewer's registration. No window or capacity check
// applies: a registrant may withdraw even after the deadline has passed.
func New(log *slog.Logger, resolver EventResolver, unregistrar UserUnregistrar, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.unregisterEvent.New"

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
			render.JSON(w, r, response.Error("failed to unregister from event"))
			return
		}

		if _, err = registration.Unregister(event, viewer); err != nil {
			rejected(w, r, log, err)
			return
		}

		if err = unregistrar.UnregisterUser(r.Context(), event.ID, viewer.UserID); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("not registered for this event"))
			default:
				log.Error("failed to unregister", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to unregister from event"))
			}
			return
		}

		fresh, err := resolver.Resolve(r.Context(), ref, viewer)
		if err != nil {
			log.Error("failed to re-fetch event after unregistration", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to unregister from event"))
			return
		}

		log.Info("user unregistered", slog.Int64("event_id", fresh.ID), slog.Int64("user_id", viewer.UserID))

		render.JSON(w, r, UnregisterResponse{
			Response: response.OK(),
			Event:    fresh,
			Decision: eligibility.ComputeDecision(fresh, viewer, clk.Now()),
		})
	}
}

func rejected(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var rejErr *registration.RejectedError
	if !errors.As(err, &rejErr) {
		log.Error("unexpected unregistration error", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to unregister from event"))
		return
	}

	log.Info("unregistration rejected", slog.String("reason", string(rejErr.Reason)))

	switch rejErr.Reason {
	case registration.ReasonRequiresAuth:
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
	case registration.ReasonNotRegistered:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("not registered for this event"))
	default:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(rejErr.Error()))
	}
}
