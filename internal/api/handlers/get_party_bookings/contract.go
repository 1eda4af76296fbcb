package get_party_bookings

import (
	"context"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/queries/models"
)

type QueryService interface {
	ListForParty(ctx context.Context, partyID string, role domain.Role) (*models.BookingViewList, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
