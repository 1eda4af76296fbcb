// Package memstore содержит in-memory реализации репозиториев и менеджера транзакций
// для тестов use case, сервисов и HTTP слоя
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-GigBookingService/internal/infra/storage/rating"
	"github.com/m04kA/SMC-GigBookingService/internal/infra/storage/user"
)

type storedBooking struct {
	booking domain.Booking
	seq     int64
}

type state struct {
	bookings map[string]storedBooking
	ratings  map[string]domain.Rating // по booking_id
	users    map[string]domain.User
	seq      int64
}

func (s state) clone() state {
	c := state{
		bookings: make(map[string]storedBooking, len(s.bookings)),
		ratings:  make(map[string]domain.Rating, len(s.ratings)),
		users:    make(map[string]domain.User, len(s.users)),
		seq:      s.seq,
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.ratings {
		c.ratings[k] = v
	}
	for k, v := range s.users {
		c.users[k] = cloneUser(v)
	}
	return c
}

// Store общее хранилище; репозитории ниже - его представления
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	data  state
	clock time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		data: state{
			bookings: make(map[string]storedBooking),
			ratings:  make(map[string]domain.Rating),
			users:    make(map[string]domain.User),
		},
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// PutUser добавляет пользователя в Identity Store
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = cloneUser(u)
}

// now возвращает монотонно растущее время, вызывать под s.mu
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func cloneUser(u domain.User) domain.User {
	if u.Musician != nil {
		profile := *u.Musician
		u.Musician = &profile
	}
	return u
}

// Bookings репозиторий бронирований
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Ratings репозиторий оценок
func (s *Store) Ratings() *RatingRepository { return &RatingRepository{s: s} }

// Users репозиторий Identity Store
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// TxManager менеджер транзакций: сериализует транзакции и откатывает состояние при ошибке
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// BookingRepository in-memory аналог booking.Repository
type BookingRepository struct{ s *Store }

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *b
	created.CreatedAt = r.s.now()
	created.UpdatedAt = created.CreatedAt
	r.s.data.seq++
	r.s.data.bookings[created.ID] = storedBooking{booking: created, seq: r.s.data.seq}

	out := created
	return &out, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.data.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	out := stored.booking
	return &out, nil
}

func (r *BookingRepository) List(_ context.Context, filter *domain.PartyFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]storedBooking, 0, len(r.s.data.bookings))
	for _, stored := range r.s.data.bookings {
		if filter != nil {
			if filter.Role == domain.RoleContractor && stored.booking.ContractorID != filter.PartyID {
				continue
			}
			if filter.Role == domain.RoleMusician && stored.booking.MusicianID != filter.PartyID {
				continue
			}
		}
		matched = append(matched, stored)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].booking.CreatedAt.Equal(matched[j].booking.CreatedAt) {
			return matched[i].booking.CreatedAt.After(matched[j].booking.CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]*domain.Booking, 0, len(matched))
	for _, stored := range matched {
		b := stored.booking
		out = append(out, &b)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.data.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	stored.booking.Status = status
	stored.booking.UpdatedAt = r.s.now()
	r.s.data.bookings[id] = stored
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	if _, rated := r.s.data.ratings[id]; rated {
		return booking.ErrBookingHasRating
	}
	delete(r.s.data.bookings, id)
	return nil
}

// RatingRepository in-memory аналог rating.Repository
type RatingRepository struct{ s *Store }

func (r *RatingRepository) Create(_ context.Context, rt *domain.Rating) (*domain.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.data.ratings[rt.BookingID]; exists {
		return nil, rating.ErrRatingAlreadyExists
	}

	created := *rt
	created.CreatedAt = r.s.now()
	r.s.data.ratings[created.BookingID] = created

	out := created
	return &out, nil
}

// LockRatee транзакции уже сериализованы TxManager
func (r *RatingRepository) LockRatee(context.Context, string) error { return nil }

func (r *RatingRepository) ExistsForBooking(_ context.Context, bookingID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.data.ratings[bookingID]
	return ok, nil
}

func (r *RatingRepository) RatedBookingIDs(_ context.Context, bookingIDs []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rated := make(map[string]bool, len(bookingIDs))
	for _, id := range bookingIDs {
		if _, ok := r.s.data.ratings[id]; ok {
			rated[id] = true
		}
	}
	return rated, nil
}

func (r *RatingRepository) ListByRatee(_ context.Context, rateeID string) ([]*domain.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Rating, 0)
	for _, rt := range r.s.data.ratings {
		if rt.RateeID == rateeID {
			copied := rt
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *RatingRepository) StatsByRatee(_ context.Context, rateeID string) (domain.RatingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var stats domain.RatingStats
	for _, rt := range r.s.data.ratings {
		if rt.RateeID == rateeID {
			stats.Sum += rt.Score
			stats.Count++
		}
	}
	return stats, nil
}

// UserRepository in-memory аналог user.Repository
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) UpdateRatingStats(_ context.Context, musicianID string, stats domain.RatingStats) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[musicianID]
	if !ok || u.Musician == nil {
		return user.ErrUserNotFound
	}
	u.Musician.AverageRating = stats.Average()
	u.Musician.RatingsCount = stats.Count
	r.s.data.users[musicianID] = u
	return nil
}

type txKey struct{}

// TxManager in-memory менеджер транзакций
type TxManager struct{ s *Store }

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.data.clone()
	m.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.data = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}

// ProfileCache кэш профилей без хранения: читает Identity Store и запоминает сбросы
type ProfileCache struct {
	users *UserRepository

	mu          sync.Mutex
	Invalidated []string
}

// NewProfileCache создает кэш поверх репозитория пользователей
func NewProfileCache(users *UserRepository) *ProfileCache {
	return &ProfileCache{users: users}
}

func (c *ProfileCache) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return c.users.GetByID(ctx, id)
}

func (c *ProfileCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, id)
	return nil
}

// NopLogger логгер, который ничего не пишет
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
