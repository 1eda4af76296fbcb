package update_booking_status

import (
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actor domain.Actor, bookingID string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		Actor:     actor,
		BookingID: bookingID,
		Status:    r.Status,
	}
}
