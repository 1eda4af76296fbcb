package booking_decision

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

// Decision ответ музыканта на приглашение
type Decision string

const (
	Accept Decision = "accept"
	Refuse Decision = "refuse"
)

const (
	msgNotFound        = "бронирование не найдено"
	msgForbidden       = "ответить на приглашение может только музыкант бронирования"
	msgAlreadyAnswered = "на приглашение уже ответили"
	msgUnknownDecision = "неизвестное действие"
)

type Handler struct {
	service  BookingService
	decision Decision
	logger   Logger
}

func NewHandler(service BookingService, decision Decision, logger Logger) *Handler {
	return &Handler{
		service:  service,
		decision: decision,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/accept
// Handle POST /api/v1/bookings/{bookingId}/refuse
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	var decide func(ctx context.Context, actor domain.Actor, bookingID string) (*models.BookingResponse, error)
	switch h.decision {
	case Accept:
		decide = h.service.Accept
	case Refuse:
		decide = h.service.Refuse
	default:
		h.logger.Error("POST /bookings/{id}/%s - Unknown decision", h.decision)
		handlers.RespondBadRequest(w, msgUnknownDecision)
		return
	}

	result, err := decide(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/%s - Booking not found: booking_id=%s", h.decision, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/%s - Access denied: booking_id=%s, actor=%s", h.decision, bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/%s - Already answered: booking_id=%s", h.decision, bookingID)
			handlers.RespondConflict(w, msgAlreadyAnswered)

		default:
			h.logger.Error("POST /bookings/{id}/%s - Failed: booking_id=%s, error=%v", h.decision, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/%s - Success: booking_id=%s, status=%s", h.decision, bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
