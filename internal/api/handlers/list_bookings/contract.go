package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/service/queries/models"
)

type QueryService interface {
	ListAll(ctx context.Context) (*models.BookingViewList, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
