package models

import (
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// RatingResponse оценка музыканта
type RatingResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"bookingId"`
	RaterID   string    `json:"raterId"`
	RateeID   string    `json:"rateeId"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingListResponse оценки музыканта и их агрегат
type RatingListResponse struct {
	MusicianID string           `json:"musicianId"`
	Average    float64          `json:"average"`
	Count      int              `json:"count"`
	Ratings    []RatingResponse `json:"ratings"`
}

// RatingStatusResponse оценено ли бронирование
type RatingStatusResponse struct {
	BookingID string `json:"bookingId"`
	Rated     bool   `json:"rated"`
}

// FromDomainRating конвертирует domain модель в DTO
func FromDomainRating(r *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Score:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// FromDomainRatingList собирает ответ и считает средний рейтинг по тем же оценкам
func FromDomainRatingList(musicianID string, ratings []*domain.Rating) *RatingListResponse {
	resp := &RatingListResponse{
		MusicianID: musicianID,
		Ratings:    make([]RatingResponse, 0, len(ratings)),
	}

	var stats domain.RatingStats
	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, FromDomainRating(r))
		stats.Sum += r.Score
		stats.Count++
	}

	resp.Average = stats.Average()
	resp.Count = stats.Count

	return resp
}
