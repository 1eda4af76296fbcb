package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

const keyPrefix = "gigs:user:"

// UserRepository источник истины для профилей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache read-through кэш профилей пользователей в Redis
// При client == nil или недоступности Redis запросы идут напрямую в репозиторий
type Cache struct {
	client *redis.Client
	repo   UserRepository
	ttl    time.Duration
	log    Logger
}

// NewCache создает кэш профилей
func NewCache(client *redis.Client, repo UserRepository, ttl time.Duration, log Logger) *Cache {
	return &Cache{
		client: client,
		repo:   repo,
		ttl:    ttl,
		log:    log,
	}
}

// GetByID получает профиль из кэша, при промахе - из репозитория
func (c *Cache) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if c.client == nil {
		return c.repo.GetByID(ctx, id)
	}

	data, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	switch {
	case err == nil:
		var cached cachedUser
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			return cached.toDomain(), nil
		}
		c.log.Warn("identity cache: corrupted entry for user=%s, reloading", id)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.log.Warn("identity cache: redis unavailable, reading user=%s from storage: %v", id, err)
		return c.repo.GetByID(ctx, id)
	}

	user, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(fromDomain(user))
	if err != nil {
		c.log.Error("identity cache: failed to encode user=%s: %v", id, err)
		return user, nil
	}

	if err := c.client.Set(ctx, keyPrefix+id, payload, c.ttl).Err(); err != nil {
		c.log.Warn("identity cache: failed to store user=%s: %v", id, err)
	}

	return user, nil
}

// Invalidate удаляет профиль из кэша (например, после пересчёта рейтинга)
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("identity cache: invalidate user=%s: %w", id, err)
	}
	return nil
}

type cachedUser struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    *string         `json:"email,omitempty"`
	Phone    *string         `json:"phone,omitempty"`
	Role     string          `json:"role"`
	Musician *cachedMusician `json:"musician,omitempty"`
}

type cachedMusician struct {
	Instruments   *string `json:"instruments,omitempty"`
	Location      *string `json:"location,omitempty"`
	Description   *string `json:"description,omitempty"`
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int     `json:"ratingsCount"`
}

func fromDomain(u *domain.User) cachedUser {
	c := cachedUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  string(u.Role),
	}
	if u.Musician != nil {
		c.Musician = &cachedMusician{
			Instruments:   u.Musician.Instruments,
			Location:      u.Musician.Location,
			Description:   u.Musician.Description,
			AverageRating: u.Musician.AverageRating,
			RatingsCount:  u.Musician.RatingsCount,
		}
	}
	return c
}

func (c cachedUser) toDomain() *domain.User {
	u := &domain.User{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Role:  domain.Role(c.Role),
	}
	if c.Musician != nil {
		u.Musician = &domain.MusicianProfile{
			Instruments:   c.Musician.Instruments,
			Location:      c.Musician.Location,
			Description:   c.Musician.Description,
			AverageRating: c.Musician.AverageRating,
			RatingsCount:  c.Musician.RatingsCount,
		}
	}
	return u
}
