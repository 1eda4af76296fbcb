package get_party_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/queries"
)

const (
	msgInvalidPartyID = "не указан ID пользователя"
	msgInvalidRole    = "неподдерживаемая роль"
)

// Handler один обработчик на экраны "мои бронирования" контрактора и музыканта
type Handler struct {
	service QueryService
	role    domain.Role
	param   string
	logger  Logger
}

// NewHandler role определяет, по какой стороне бронирования фильтровать;
// param - имя переменной пути с ID пользователя
func NewHandler(service QueryService, role domain.Role, param string, logger Logger) *Handler {
	return &Handler{
		service: service,
		role:    role,
		param:   param,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/musician/{musicianId}
// Handle GET /api/v1/bookings/contractor/{contractorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)[h.param]
	if partyID == "" {
		h.logger.Warn("GET /bookings/%s/{id} - Empty party ID", h.role)
		handlers.RespondBadRequest(w, msgInvalidPartyID)
		return
	}

	result, err := h.service.ListForParty(r.Context(), partyID, h.role)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidRole) {
			h.logger.Warn("GET /bookings/%s/{id} - Unsupported role", h.role)
			handlers.RespondBadRequest(w, msgInvalidRole)
			return
		}
		h.logger.Error("GET /bookings/%s/{id} - Failed to get bookings: party_id=%s, error=%v", h.role, partyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/%s/{id} - Bookings retrieved successfully: party_id=%s, count=%d",
		h.role, partyID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
