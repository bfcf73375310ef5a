package createEvent

import (
	"context"
	"errors"
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
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description" validate:"required"`
	Location             string    `json:"location" validate:"required"`
	Category             string    `json:"category" validate:"required"`
	EventDate            time.Time `json:"event_date" validate:"required"`
	RegistrationDeadline time.Time `json:"registration_deadline" validate:"required"`
	MaxParticipants      *int      `json:"max_participants" validate:"omitempty,gt=0"`
}

type EventResponse struct {
	response.Response
	EventID   int64  `json:"event_id"`
	ShareCode string `json:"share_code"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, event models.Event) (int64, string, error)
}

func New(log *slog.Logger, creator EventCreator, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log = log.With(slog.String("op", op))

		viewer := mwauth.Viewer(r.Context())
		if !viewer.Authenticated {
			log.Info("unauthenticated create attempt")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		if err = eligibility.ValidateSchedule(req.EventDate, req.RegistrationDeadline, clk.Now()); err != nil {
			log.Error("invalid event schedule", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		event := models.Event{
			Title:                req.Title,
			Description:          req.Description,
			Location:             req.Location,
			Category:             req.Category,
			EventDate:            req.EventDate,
			RegistrationDeadline: req.RegistrationDeadline,
			MaxParticipants:      req.MaxParticipants,
			OrganizerID:          viewer.UserID,
		}

		eventID, shareCode, err := creator.CreateEvent(r.Context(), event)
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))
			return
		}

		log.Info("event added", slog.Int64("id", eventID))

		responseOK(w, r, eventID, shareCode)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int64, shareCode string) {
	render.JSON(w, r, EventResponse{
		Response:  response.OK(),
		EventID:   eventID,
		ShareCode: shareCode,
	})
}
