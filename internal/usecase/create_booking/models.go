package create_booking

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor          domain.Actor // Кто создаёт бронирование
	ContractorID   string
	MusicianID     string
	ContractorName *string // Если не указано - берётся из Identity Store
	MusicianName   *string // Если не указано - берётся из Identity Store
	Instruments    *string // Если не указано - берётся из профиля музыканта
	EventDate      string  // DD/MM/YYYY, DD-MM-YYYY или YYYY-MM-DD
	EventTime      *string
	Location       *string
	Notes          *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             string
	ContractorID   string
	MusicianID     string
	ContractorName *string
	MusicianName   *string
	Instruments    *string
	EventDate      string // YYYY-MM-DD
	EventTime      *string
	Location       *string
	Notes          *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
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
