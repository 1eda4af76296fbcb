package submit_rating

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// Request модель запроса на оценку бронирования
type Request struct {
	Actor     domain.Actor
	BookingID string
	Score     int
	Comment   *string
}

// Response созданная оценка и новый агрегат музыканта
type Response struct {
	ID        string
	BookingID string
	RaterID   string
	RateeID   string
	Score     int
	Comment   *string
	CreatedAt time.Time

	MusicianAverage      float64
	MusicianRatingsCount int
}
