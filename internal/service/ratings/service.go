package ratings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/ratings/models"
)

// Service сервис чтения оценок
type Service struct {
	ratingRepo RatingRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса оценок
func NewService(ratingRepo RatingRepository, logger Logger) *Service {
	return &Service{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// ListForMusician возвращает оценки музыканта (сначала новые), их количество и среднее
func (s *Service) ListForMusician(ctx context.Context, musicianID string) (*models.RatingListResponse, error) {
	s.logger.Info("ListForMusician: fetching ratings for musician=%s", musicianID)

	if strings.TrimSpace(musicianID) == "" {
		return nil, fmt.Errorf("%w: musicianId is required", ErrInvalidInput)
	}

	ratings, err := s.ratingRepo.ListByRatee(ctx, musicianID)
	if err != nil {
		s.logger.Error("ListForMusician: repository error for musician=%s: %v", musicianID, err)
		return nil, fmt.Errorf("%w: ListForMusician - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRatingList(musicianID, ratings)
	s.logger.Info("ListForMusician: musician=%s has %d ratings, average=%.2f", musicianID, resp.Count, resp.Average)

	return resp, nil
}

// HasRated проверяет, оценено ли бронирование
func (s *Service) HasRated(ctx context.Context, bookingID string) (*models.RatingStatusResponse, error) {
	resp := &models.RatingStatusResponse{BookingID: bookingID}

	if !domain.IsBookingID(bookingID) {
		s.logger.Warn("HasRated: malformed booking id=%s", bookingID)
		return resp, nil
	}

	rated, err := s.ratingRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("HasRated: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: HasRated - repository error: %v", ErrInternal, err)
	}

	resp.Rated = rated
	return resp, nil
}
