package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GigBookingService/pkg/psqlbuilder"
)

// Repository чтение Identity Store (таблицы users и musicians)
// Сервис пишет только средний рейтинг музыканта
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя и, если он музыкант, его профиль
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"u.id",
		"u.name",
		"u.email",
		"u.phone",
		"u.role",
		"m.user_id",
		"m.instruments",
		"m.location",
		"m.description",
		"m.average_rating",
		"m.ratings_count",
	).
		From("users u").
		LeftJoin("musicians m ON m.user_id = u.id").
		Where(squirrel.Eq{"u.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		user          domain.User
		musicianID    sql.NullString
		profile       domain.MusicianProfile
		averageRating sql.NullFloat64
		ratingsCount  sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&musicianID,
		&profile.Instruments,
		&profile.Location,
		&profile.Description,
		&averageRating,
		&ratingsCount,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}

	if musicianID.Valid {
		profile.AverageRating = averageRating.Float64
		profile.RatingsCount = int(ratingsCount.Int64)
		user.Musician = &profile
	}

	return &user, nil
}

// UpdateRatingStats записывает пересчитанный средний рейтинг музыканта
func (r *Repository) UpdateRatingStats(ctx context.Context, musicianID string, stats domain.RatingStats) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("musicians").
		Set("average_rating", stats.Average()).
		Set("ratings_count", stats.Count).
		Where(squirrel.Eq{"user_id": musicianID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingStats - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
