package submit_rating

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/api/middleware"
	submitRating "github.com/m04kA/SMC-GigBookingService/internal/usecase/submit_rating"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScore       = "оценка должна быть от 1 до 5"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "оценить музыканта может только контрактор бронирования"
	msgAlreadyRated       = "бронирование уже оценено"
	msgNotConfirmed       = "оценить можно только подтверждённое бронирование"
)

type Handler struct {
	useCase SubmitRatingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitRatingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/ratings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req SubmitRatingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ratings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, submitRating.ErrInvalidScore):
			h.logger.Warn("POST /ratings - Invalid score: booking_id=%s, score=%d", req.BookingID, req.Score)
			handlers.RespondBadRequest(w, msgInvalidScore)

		case errors.Is(err, submitRating.ErrInvalidInput):
			h.logger.Warn("POST /ratings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, submitRating.ErrBookingNotFound):
			h.logger.Warn("POST /ratings - Booking not found: booking_id=%s", req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, submitRating.ErrAccessDenied):
			h.logger.Warn("POST /ratings - Access denied: booking_id=%s, actor=%s", req.BookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, submitRating.ErrAlreadyRated):
			h.logger.Warn("POST /ratings - Already rated: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgAlreadyRated)

		case errors.Is(err, submitRating.ErrBookingNotConfirmed):
			h.logger.Warn("POST /ratings - Booking not confirmed: booking_id=%s", req.BookingID)
			handlers.RespondConflict(w, msgNotConfirmed)

		default:
			h.logger.Error("POST /ratings - Failed to submit rating: booking_id=%s, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /ratings - Rating created successfully: rating_id=%s, booking_id=%s, score=%d",
		result.ID, result.BookingID, result.Score)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
