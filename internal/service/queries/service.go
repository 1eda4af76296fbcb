package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-GigBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-GigBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-GigBookingService/internal/service/queries/models"
)

// Service проекция реестра бронирований для экранов контрактора и музыканта
// Ничего не изменяет
type Service struct {
	bookings BookingSource
	ratings  RatingIndex
	profiles ProfileReader
	logger   Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(bookings BookingSource, ratings RatingIndex, profiles ProfileReader, logger Logger) *Service {
	return &Service{
		bookings: bookings,
		ratings:  ratings,
		profiles: profiles,
		logger:   logger,
	}
}

// GetBooking возвращает представление одного бронирования
func (s *Service) GetBooking(ctx context.Context, id string) (*models.BookingView, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetBooking - %v", ErrInternal, err)
	}

	views, err := s.project(ctx, "GetBooking", []bookingModels.BookingResponse{*booking})
	if err != nil {
		return nil, err
	}

	return &views.Bookings[0], nil
}

// ListAll возвращает представления всех бронирований, сначала новые
func (s *Service) ListAll(ctx context.Context) (*models.BookingViewList, error) {
	list, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - %v", ErrInternal, err)
	}

	return s.project(ctx, "ListAll", list.Bookings)
}

// ListForParty возвращает бронирования, в которых пользователь выступает в роли role
func (s *Service) ListForParty(ctx context.Context, partyID string, role domain.Role) (*models.BookingViewList, error) {
	s.logger.Info("ListForParty: fetching bookings for %s=%s", role, partyID)

	var (
		list *bookingModels.BookingListResponse
		err  error
	)

	switch role {
	case domain.RoleContractor:
		list, err = s.bookings.ListByContractor(ctx, partyID)
	case domain.RoleMusician:
		list, err = s.bookings.ListByMusician(ctx, partyID)
	default:
		s.logger.Warn("ListForParty: unsupported role=%q", role)
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: ListForParty - %v", ErrInternal, err)
	}

	return s.project(ctx, "ListForParty", list.Bookings)
}

// project дополняет бронирования сторонами и признаком оценки
// Профили запрашиваются один раз на пользователя в пределах запроса
func (s *Service) project(ctx context.Context, op string, list []bookingModels.BookingResponse) (*models.BookingViewList, error) {
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}

	rated, err := s.ratings.RatedBookingIDs(ctx, ids)
	if err != nil {
		s.logger.Error("%s: failed to load rating flags: %v", op, err)
		return nil, fmt.Errorf("%w: %s - rating flags: %v", ErrInternal, op, err)
	}

	parties := make(map[string]models.PartyView)
	resolve := func(id string) (models.PartyView, error) {
		if view, ok := parties[id]; ok {
			return view, nil
		}

		user, err := s.profiles.GetByID(ctx, id)
		if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
			return models.PartyView{}, err
		}

		view := models.FromDomainUser(id, user)
		parties[id] = view
		return view, nil
	}

	views := &models.BookingViewList{Bookings: make([]models.BookingView, 0, len(list))}
	for _, b := range list {
		contractor, err := resolve(b.ContractorID)
		if err != nil {
			s.logger.Error("%s: failed to load contractor id=%s: %v", op, b.ContractorID, err)
			return nil, fmt.Errorf("%w: %s - contractor profile: %v", ErrInternal, op, err)
		}

		musician, err := resolve(b.MusicianID)
		if err != nil {
			s.logger.Error("%s: failed to load musician id=%s: %v", op, b.MusicianID, err)
			return nil, fmt.Errorf("%w: %s - musician profile: %v", ErrInternal, op, err)
		}

		views.Bookings = append(views.Bookings, models.BookingView{
			BookingResponse: b,
			Contractor:      contractor,
			Musician:        musician,
			Rated:           rated[b.ID],
		})
	}

	return views, nil
}
