package submit_rating

import (
	"context"

	submitRating "github.com/m04kA/SMC-GigBookingService/internal/usecase/submit_rating"
)

type SubmitRatingUseCase interface {
	Execute(ctx context.Context, req *submitRating.Request) (*submitRating.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
