package get_musician_ratings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/service/ratings"
)

const (
	msgInvalidMusicianID = "не указан ID музыканта"
)

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/ratings/musician/{musicianId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	musicianID := mux.Vars(r)["musicianId"]

	result, err := h.service.ListForMusician(r.Context(), musicianID)
	if err != nil {
		if errors.Is(err, ratings.ErrInvalidInput) {
			h.logger.Warn("GET /ratings/musician/{id} - Empty musician ID")
			handlers.RespondBadRequest(w, msgInvalidMusicianID)
			return
		}
		h.logger.Error("GET /ratings/musician/{id} - Failed to list ratings: musician_id=%s, error=%v", musicianID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /ratings/musician/{id} - Ratings retrieved successfully: musician_id=%s, count=%d, average=%.2f",
		musicianID, result.Count, result.Average)
	handlers.RespondJSON(w, http.StatusOK, result)
}
