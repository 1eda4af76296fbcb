package get_booking

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/service/queries/models"
)

type QueryService interface {
	GetBooking(ctx context.Context, id string) (*models.BookingView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
