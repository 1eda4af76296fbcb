package domain

import (
	"math"
	"time"
)

// Rating represents a contractor's score for the musician of a confirmed booking
type Rating struct {
	ID        string
	BookingID string
	RaterID   string // contractor
	RateeID   string // musician
	Score     int
	Comment   *string
	CreatedAt time.Time
}

// IsValidScore returns true if score is within the allowed range
func IsValidScore(score int) bool {
	return score >= MinRatingScore && score <= MaxRatingScore
}

// RatingStats сумма и количество оценок музыканта
type RatingStats struct {
	Sum   int
	Count int
}

// Average среднее арифметическое, округлённое до двух знаков
func (s RatingStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return math.Round(float64(s.Sum)/float64(s.Count)*100) / 100
}
