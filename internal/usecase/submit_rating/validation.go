package submit_rating

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if !domain.IsValidScore(req.Score) {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, req.Score)
	}

	if req.Comment != nil && len([]rune(*req.Comment)) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

// validateBooking оценивать можно только подтверждённое бронирование и только его контрактору
func validateBooking(actor domain.Actor, booking *domain.Booking) error {
	if !actor.Is(booking.ContractorID) {
		return ErrAccessDenied
	}

	if !booking.IsConfirmed() {
		return fmt.Errorf("%w: status is %s", ErrBookingNotConfirmed, booking.Status)
	}

	return nil
}

func normalizeComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
