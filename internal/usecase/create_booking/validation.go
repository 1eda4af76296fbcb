package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ContractorID) == "" {
		return fmt.Errorf("%w: contractorId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.MusicianID) == "" {
		return fmt.Errorf("%w: musicianId is required", ErrInvalidInput)
	}

	if req.ContractorID == req.MusicianID {
		return fmt.Errorf("%w: contractor and musician must be different users", ErrInvalidInput)
	}

	if strings.TrimSpace(req.EventDate) == "" {
		return fmt.Errorf("%w: eventDate is required", ErrInvalidDate)
	}

	if err := validateLength("location", req.Location, domain.MaxLocationLength); err != nil {
		return err
	}

	if err := validateLength("notes", req.Notes, domain.MaxNotesLength); err != nil {
		return err
	}

	return validateLength("eventTime", req.EventTime, domain.MaxEventTimeLength)
}

// validateAccess бронирование создаёт сам контрактор или администратор
func validateAccess(actor domain.Actor, contractorID string) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == domain.RoleContractor && actor.Is(contractorID) {
		return nil
	}
	return ErrAccessDenied
}

func validateLength(field string, value *string, limit int) error {
	if value != nil && len([]rune(*value)) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, limit)
	}
	return nil
}

// optional обрезает пробелы и превращает пустую строку в nil
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
