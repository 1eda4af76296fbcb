package models

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Actor     domain.Actor `json:"-"`
	BookingID string       `json:"-"`
	Status    string       `json:"status"` // Допускаются и старые значения: confirmado, cancelado...
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           string `json:"id"`
	ContractorID string `json:"contractorId"`
	MusicianID   string `json:"musicianId"`

	// Денормализованные данные
	ContractorName *string `json:"contractorName,omitempty"`
	MusicianName   *string `json:"musicianName,omitempty"`
	Instruments    *string `json:"instruments,omitempty"`

	EventDate string  `json:"eventDate"` // "2026-05-10"
	EventTime *string `json:"eventTime,omitempty"`
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Status    string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		ContractorID:   b.ContractorID,
		MusicianID:     b.MusicianID,
		ContractorName: b.ContractorName,
		MusicianName:   b.MusicianName,
		Instruments:    b.Instruments,
		EventDate:      b.EventDate,
		EventTime:      b.EventTime,
		Location:       b.Location,
		Notes:          b.Notes,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
