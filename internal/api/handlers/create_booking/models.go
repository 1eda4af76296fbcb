package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-GigBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Поле status, если клиент его пришлёт, игнорируется: новое бронирование всегда pending
type CreateBookingRequest struct {
	ContractorID   string  `json:"contractorId"`
	MusicianID     string  `json:"musicianId"`
	ContractorName *string `json:"contractorName,omitempty"`
	MusicianName   *string `json:"musicianName,omitempty"`
	Instruments    *string `json:"instruments,omitempty"`
	EventDate      string  `json:"eventDate"` // "10/05/2026" или "2026-05-10"
	EventTime      *string `json:"eventTime,omitempty"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             string  `json:"id"`
	ContractorID   string  `json:"contractorId"`
	MusicianID     string  `json:"musicianId"`
	ContractorName *string `json:"contractorName,omitempty"`
	MusicianName   *string `json:"musicianName,omitempty"`
	Instruments    *string `json:"instruments,omitempty"`
	EventDate      string  `json:"eventDate"`
	EventTime      *string `json:"eventTime,omitempty"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		Actor:          actor,
		ContractorID:   r.ContractorID,
		MusicianID:     r.MusicianID,
		ContractorName: r.ContractorName,
		MusicianName:   r.MusicianName,
		Instruments:    r.Instruments,
		EventDate:      r.EventDate,
		EventTime:      r.EventTime,
		Location:       r.Location,
		Notes:          r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		ContractorID:   resp.ContractorID,
		MusicianID:     resp.MusicianID,
		ContractorName: resp.ContractorName,
		MusicianName:   resp.MusicianName,
		Instruments:    resp.Instruments,
		EventDate:      resp.EventDate,
		EventTime:      resp.EventTime,
		Location:       resp.Location,
		Notes:          resp.Notes,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
