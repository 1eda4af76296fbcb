package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/user"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	users       UserReader
	newID       IDGenerator
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	users UserReader,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		users:       users,
		newID:       uuid.NewString,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute создаёт бронирование в статусе pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%s, contractor=%s, musician=%s, date=%s",
		req.Actor.UserID, req.ContractorID, req.MusicianID, req.EventDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализация даты
	eventDate, err := domain.NormalizeEventDate(req.EventDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid event date %q", req.EventDate)
		return nil, fmt.Errorf("%w: %q, expected DD/MM/YYYY or YYYY-MM-DD", ErrInvalidDate, req.EventDate)
	}

	// 3. Проверка прав
	if err := validateAccess(req.Actor, req.ContractorID); err != nil {
		uc.logger.Warn("CreateBooking: actor=%s (%s) cannot book as contractor=%s",
			req.Actor.UserID, req.Actor.Role, req.ContractorID)
		return nil, err
	}

	booking := &domain.Booking{
		ID:             uc.newID(),
		ContractorID:   req.ContractorID,
		MusicianID:     req.MusicianID,
		ContractorName: optional(req.ContractorName),
		MusicianName:   optional(req.MusicianName),
		Instruments:    optional(req.Instruments),
		EventDate:      eventDate,
		EventTime:      optional(req.EventTime),
		Location:       optional(req.Location),
		Notes:          optional(req.Notes),
		Status:         domain.StatusPending,
	}

	// 4. Денормализация имён из Identity Store
	if err := uc.resolveParties(ctx, booking); err != nil {
		return nil, err
	}

	// 5. Сохраняем бронирование
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	return fromDomain(created), nil
}

// resolveParties заполняет отсутствующие имена сторон и инструменты музыканта
// Отсутствие пользователя в Identity Store не ошибка - поле остаётся пустым
func (uc *UseCase) resolveParties(ctx context.Context, booking *domain.Booking) error {
	if booking.ContractorName == nil {
		contractor, err := uc.lookup(ctx, booking.ContractorID)
		if err != nil {
			return err
		}
		if contractor != nil {
			booking.ContractorName = optional(&contractor.Name)
		}
	}

	if booking.MusicianName == nil || booking.Instruments == nil {
		musician, err := uc.lookup(ctx, booking.MusicianID)
		if err != nil {
			return err
		}
		if musician != nil {
			if booking.MusicianName == nil {
				booking.MusicianName = optional(&musician.Name)
			}
			if booking.Instruments == nil && musician.Musician != nil {
				booking.Instruments = optional(musician.Musician.Instruments)
			}
		}
	}

	return nil
}

func (uc *UseCase) lookup(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%s not found in identity store", userID)
			return nil, nil
		}
		uc.logger.Error("CreateBooking: failed to get user id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	return user, nil
}
