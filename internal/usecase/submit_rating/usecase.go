package submit_rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/booking"
	ratingRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/rating"
	userRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/user"
)

// UseCase use case для оценки музыканта по подтверждённому бронированию
type UseCase struct {
	bookingRepo BookingRepository
	ratingRepo  RatingRepository
	userRepo    UserRepository
	cache       ProfileCache
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ratingRepo RatingRepository,
	userRepo UserRepository,
	cache ProfileCache,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		ratingRepo:  ratingRepo,
		userRepo:    userRepo,
		cache:       cache,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute сохраняет оценку и пересчитывает средний рейтинг музыканта
// Оценка и новый средний рейтинг пишутся в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitRating: actor=%s, booking=%s, score=%d", req.Actor.UserID, req.BookingID, req.Score)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitRating: validation failed: %v", err)
		return nil, err
	}

	if !domain.IsBookingID(req.BookingID) {
		uc.logger.Warn("SubmitRating: malformed booking id=%s", req.BookingID)
		return nil, ErrBookingNotFound
	}

	var (
		created *domain.Rating
		stats   domain.RatingStats
	)

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		// 2. Блокируем бронирование и проверяем права и статус
		booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("SubmitRating: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := validateBooking(req.Actor, booking); err != nil {
			uc.logger.Warn("SubmitRating: booking id=%s rejected for actor=%s: %v", booking.ID, req.Actor.UserID, err)
			return err
		}

		// 3. Сериализуем пересчёт среднего по музыканту
		if err := uc.ratingRepo.LockRatee(ctx, booking.MusicianID); err != nil {
			return fmt.Errorf("%w: failed to lock musician: %v", ErrInternal, err)
		}

		// 4. Сохраняем оценку; стороны берём из бронирования
		created, err = uc.ratingRepo.Create(ctx, &domain.Rating{
			ID:        uuid.NewString(),
			BookingID: booking.ID,
			RaterID:   booking.ContractorID,
			RateeID:   booking.MusicianID,
			Score:     req.Score,
			Comment:   normalizeComment(req.Comment),
		})
		if err != nil {
			if errors.Is(err, ratingRepo.ErrRatingAlreadyExists) {
				uc.logger.Warn("SubmitRating: booking id=%s already rated", booking.ID)
				return ErrAlreadyRated
			}
			return fmt.Errorf("%w: failed to create rating: %v", ErrInternal, err)
		}

		// 5. Пересчитываем средний рейтинг
		stats, err = uc.ratingRepo.StatsByRatee(ctx, booking.MusicianID)
		if err != nil {
			return fmt.Errorf("%w: failed to aggregate ratings: %v", ErrInternal, err)
		}

		err = uc.userRepo.UpdateRatingStats(ctx, booking.MusicianID, stats)
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("SubmitRating: musician id=%s has no profile, average not stored", booking.MusicianID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: failed to update musician rating: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("SubmitRating: booking id=%s: %v", req.BookingID, err)
		}
		return nil, err
	}

	// 6. Сбрасываем кэш профиля уже после коммита
	if err := uc.cache.Invalidate(ctx, created.RateeID); err != nil {
		uc.logger.Warn("SubmitRating: failed to invalidate profile cache for musician id=%s: %v", created.RateeID, err)
	}

	uc.metrics.RatingSubmitted(created.Score)
	uc.logger.Info("SubmitRating: booking id=%s rated %d, musician id=%s average=%.2f (%d ratings)",
		created.BookingID, created.Score, created.RateeID, stats.Average(), stats.Count)

	return &Response{
		ID:                   created.ID,
		BookingID:            created.BookingID,
		RaterID:              created.RaterID,
		RateeID:              created.RateeID,
		Score:                created.Score,
		Comment:              created.Comment,
		CreatedAt:            created.CreatedAt,
		MusicianAverage:      stats.Average(),
		MusicianRatingsCount: stats.Count,
	}, nil
}
