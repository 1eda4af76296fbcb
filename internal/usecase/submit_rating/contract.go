package submit_rating

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	LockRatee(ctx context.Context, rateeID string) error
	StatsByRatee(ctx context.Context, rateeID string) (domain.RatingStats, error)
}

// UserRepository запись агрегата оценок музыканта в Identity Store
type UserRepository interface {
	UpdateRatingStats(ctx context.Context, musicianID string, stats domain.RatingStats) error
}

// ProfileCache кэш профилей, который нужно сбросить после пересчёта рейтинга
type ProfileCache interface {
	Invalidate(ctx context.Context, userID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	RatingSubmitted(score int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
