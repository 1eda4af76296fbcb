package get_rating_status

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/service/ratings/models"
)

type RatingService interface {
	HasRated(ctx context.Context, bookingID string) (*models.RatingStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
