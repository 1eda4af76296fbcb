package submit_rating

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	submitRating "github.com/m04kA/SMC-GigBookingService/internal/usecase/submit_rating"
)

// SubmitRatingRequest HTTP request model
// Стороны оценки берутся из бронирования, поля rater/ratee от клиента не принимаются
type SubmitRatingRequest struct {
	BookingID string  `json:"bookingId"`
	Score     int     `json:"score"`
	Comment   *string `json:"comment,omitempty"`
}

// RatingResponse HTTP response model
type RatingResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	RaterID   string  `json:"raterId"`
	RateeID   string  `json:"rateeId"`
	Score     int     `json:"score"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"createdAt"`

	MusicianAverage      float64 `json:"musicianAverage"`
	MusicianRatingsCount int     `json:"musicianRatingsCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitRatingRequest) ToUseCaseRequest(actor domain.Actor) *submitRating.Request {
	return &submitRating.Request{
		Actor:     actor,
		BookingID: r.BookingID,
		Score:     r.Score,
		Comment:   r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitRating.Response) *RatingResponse {
	return &RatingResponse{
		ID:                   resp.ID,
		BookingID:            resp.BookingID,
		RaterID:              resp.RaterID,
		RateeID:              resp.RateeID,
		Score:                resp.Score,
		Comment:              resp.Comment,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		MusicianAverage:      resp.MusicianAverage,
		MusicianRatingsCount: resp.MusicianRatingsCount,
	}
}
