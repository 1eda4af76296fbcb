package get_musician_ratings

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/service/ratings/models"
)

type RatingService interface {
	ListForMusician(ctx context.Context, musicianID string) (*models.RatingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
