package booking_decision

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Accept(ctx context.Context, actor domain.Actor, bookingID string) (*models.BookingResponse, error)
	Refuse(ctx context.Context, actor domain.Actor, bookingID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
