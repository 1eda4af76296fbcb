package create_booking

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// UserReader чтение профилей из Identity Store
type UserReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// IDGenerator генератор идентификаторов бронирований
type IDGenerator func() string

// MetricsRecorder доменные счётчики
type MetricsRecorder interface {
	BookingCreated()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
