package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	ratings     RatingChecker
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	ratings RatingChecker,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		ratings:     ratings,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListAll получает все бронирования, сначала новые
func (s *Service) ListAll(ctx context.Context) (*models.BookingListResponse, error) {
	return s.list(ctx, "ListAll", nil)
}

// ListByMusician получает бронирования музыканта, сначала новые
func (s *Service) ListByMusician(ctx context.Context, musicianID string) (*models.BookingListResponse, error) {
	return s.list(ctx, "ListByMusician", &domain.PartyFilter{PartyID: musicianID, Role: domain.RoleMusician})
}

// ListByContractor получает бронирования контрактора, сначала новые
func (s *Service) ListByContractor(ctx context.Context, contractorID string) (*models.BookingListResponse, error) {
	return s.list(ctx, "ListByContractor", &domain.PartyFilter{PartyID: contractorID, Role: domain.RoleContractor})
}

// UpdateStatus меняет статус бронирования
// Менять статус может музыкант бронирования или администратор.
// Проверка перехода и запись идут в одной транзакции под FOR UPDATE
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s to status=%q by actor=%s", req.BookingID, req.Status, req.Actor.UserID)

	if strings.TrimSpace(req.Status) == "" {
		s.logger.Warn("UpdateStatus: empty status for booking id=%s", req.BookingID)
		return nil, fmt.Errorf("%w: status is required", ErrInvalidInput)
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: unknown status=%q for booking id=%s", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	return s.transition(ctx, "UpdateStatus", req.Actor, req.BookingID, status)
}

// Accept подтверждает бронирование от имени музыканта
func (s *Service) Accept(ctx context.Context, actor domain.Actor, bookingID string) (*models.BookingResponse, error) {
	s.logger.Info("Accept: booking id=%s by actor=%s", bookingID, actor.UserID)
	return s.transition(ctx, "Accept", actor, bookingID, domain.StatusConfirmed)
}

// Refuse отклоняет бронирование от имени музыканта
func (s *Service) Refuse(ctx context.Context, actor domain.Actor, bookingID string) (*models.BookingResponse, error) {
	s.logger.Info("Refuse: booking id=%s by actor=%s", bookingID, actor.UserID)
	return s.transition(ctx, "Refuse", actor, bookingID, domain.StatusCancelled)
}

// Delete удаляет бронирование
// Удалить может любая из сторон или администратор; оценённое бронирование удалить нельзя
func (s *Service) Delete(ctx context.Context, actor domain.Actor, bookingID string) error {
	s.logger.Info("Delete: booking id=%s by actor=%s", bookingID, actor.UserID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "Delete", bookingID)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() && !booking.IsParty(actor.UserID) {
			s.logger.Warn("Delete: actor=%s is not a party of booking id=%s", actor.UserID, bookingID)
			return ErrAccessDenied
		}

		rated, err := s.ratings.ExistsForBooking(ctx, bookingID)
		if err != nil {
			s.logger.Error("Delete: failed to check rating for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Delete - rating check: %v", ErrInternal, err)
		}
		if rated {
			s.logger.Warn("Delete: booking id=%s already rated", bookingID)
			return ErrBookingHasRating
		}

		return s.translateWriteError("Delete", bookingID, s.bookingRepo.Delete(ctx, bookingID))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) transition(
	ctx context.Context,
	op string,
	actor domain.Actor,
	bookingID string,
	next domain.BookingStatus,
) (*models.BookingResponse, error) {
	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, op, bookingID)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() && !actor.Is(booking.MusicianID) {
			s.logger.Warn("%s: actor=%s is not the musician of booking id=%s", op, actor.UserID, bookingID)
			return ErrAccessDenied
		}

		current := booking.Status
		if err := booking.TransitionTo(next); err != nil {
			if booking.IsTerminal() {
				s.logger.Warn("%s: booking id=%s is already %s and final", op, bookingID, current)
			} else {
				s.logger.Warn("%s: booking id=%s cannot move from %s to %s", op, bookingID, current, next)
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
		}

		if err := s.translateWriteError(op, bookingID, s.bookingRepo.UpdateStatus(ctx, bookingID, next)); err != nil {
			return err
		}

		updated, err = s.getBooking(ctx, op, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.StatusChanged(string(next))
	s.logger.Info("%s: booking id=%s is now %s", op, bookingID, next)

	return models.FromDomainBooking(updated), nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	if !domain.IsBookingID(id) {
		s.logger.Warn("%s: malformed booking id=%s", op, id)
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, filter *domain.PartyFilter) (*models.BookingListResponse, error) {
	if filter != nil {
		s.logger.Info("%s: fetching bookings for %s=%s", op, filter.Role, filter.PartyID)
	} else {
		s.logger.Info("%s: fetching all bookings", op)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) translateWriteError(op, bookingID string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s disappeared during update", op, bookingID)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrBookingHasRating):
		s.logger.Warn("%s: booking id=%s was rated concurrently", op, bookingID)
		return ErrBookingHasRating
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
