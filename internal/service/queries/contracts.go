package queries

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

// BookingSource чтение бронирований из реестра
type BookingSource interface {
	GetByID(ctx context.Context, id string) (*bookingModels.BookingResponse, error)
	ListAll(ctx context.Context) (*bookingModels.BookingListResponse, error)
	ListByMusician(ctx context.Context, musicianID string) (*bookingModels.BookingListResponse, error)
	ListByContractor(ctx context.Context, contractorID string) (*bookingModels.BookingListResponse, error)
}

// RatingIndex какие бронирования уже оценены
type RatingIndex interface {
	RatedBookingIDs(ctx context.Context, bookingIDs []string) (map[string]bool, error)
}

// ProfileReader чтение профилей сторон (через кэш)
type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
