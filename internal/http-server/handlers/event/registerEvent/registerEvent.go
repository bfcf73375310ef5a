package registerEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

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

type RegisterResponse struct {
	response.Response
	Event    *models.Event        `json:"event"`
	Decision eligibility.Decision `json:"registration_decision"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventResolver
type EventResolver interface {
	Resolve(ctx context.Context, ref string, viewer models.Viewer) (*models.Event, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserRegistrar
type UserRegistrar interface {
	RegisterUser(ctx context.Context, eventID, userID int64, now time.Time) error
}

// New gates the attempt through the eligibility engine, delegates the
// atomic counter update to the store, then re-fetches the snapshot so the
// response reflects the authoritative state rather than a local increment.
func New(log *slog.Logger, resolver EventResolver, registrar UserRegistrar, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.registerEvent.New"

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
		now := clk.Now()

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
			render.JSON(w, r, response.Error("failed to register for event"))
			return
		}

		if _, err = registration.Register(event, viewer, now); err != nil {
			rejected(w, r, log, err)
			return
		}

		if err = registrar.RegisterUser(r.Context(), event.ID, viewer.UserID, now); err != nil {
			// The snapshot may have gone stale between the local decision
			// and the transaction; surface the store's verdict.
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrRegistrationClosed):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("registration is closed"))
			case errors.Is(err, storage.ErrEventFull):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is full"))
			case errors.Is(err, storage.ErrAlreadyRegistered):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("already registered for this event"))
			default:
				log.Error("failed to register", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to register for event"))
			}
			return
		}

		fresh, err := resolver.Resolve(r.Context(), ref, viewer)
		if err != nil {
			log.Error("failed to re-fetch event after registration", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register for event"))
			return
		}

		log.Info("user registered", slog.Int64("event_id", fresh.ID), slog.Int64("user_id", viewer.UserID))

		render.JSON(w, r, RegisterResponse{
			Response: response.OK(),
			Event:    fresh,
			Decision: eligibility.ComputeDecision(fresh, viewer, now),
		})
	}
}

func rejected(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var rejErr *registration.RejectedError
	if !errors.As(err, &rejErr) {
		log.Error("unexpected registration error", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register for event"))
		return
	}

	log.Info("registration rejected", slog.String("reason", string(rejErr.Reason)))

	switch rejErr.Reason {
	case registration.ReasonRequiresAuth:
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
	case registration.ReasonClosed:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("registration is closed"))
	case registration.ReasonFull:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("event is full"))
	case registration.ReasonAlreadyRegistered:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("already registered for this event"))
	default:
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(rejErr.Error()))
	}
}
