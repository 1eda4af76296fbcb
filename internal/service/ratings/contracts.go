package ratings

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	ListByRatee(ctx context.Context, rateeID string) ([]*domain.Rating, error)
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
