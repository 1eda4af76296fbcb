package delete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
)

const (
	msgNotFound  = "бронирование не найдено"
	msgForbidden = "удалить бронирование может только его участник"
	msgHasRating = "бронирование уже оценено и не может быть удалено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	if err := h.service.Delete(r.Context(), actor, bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("DELETE /bookings/{id} - Access denied: booking_id=%s, actor=%s", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrBookingHasRating):
			h.logger.Warn("DELETE /bookings/{id} - Booking has rating: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgHasRating)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%s, actor=%s", bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, DeleteBookingResponse{ID: bookingID, Deleted: true})
}
