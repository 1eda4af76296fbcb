package rating

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-GigBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-GigBookingService/pkg/psqlbuilder"
)

var ratingColumns = []string{
	"id",
	"booking_id",
	"rater_id",
	"ratee_id",
	"score",
	"comment",
	"created_at",
}

// Repository репозиторий оценок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория оценок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет оценку
// Уникальность по booking_id обеспечивается ограничением в БД, поэтому
// при параллельных запросах успешен ровно один
func (r *Repository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ratings").
		Columns("id", "booking_id", "rater_id", "ratee_id", "score", "comment").
		Values(rating.ID, rating.BookingID, rating.RaterID, rating.RateeID, rating.Score, rating.Comment).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrRatingAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rating.CreatedAt = createdAt.Time
	return rating, nil
}

// LockRatee берёт транзакционную advisory-блокировку на музыканта,
// чтобы пересчёт среднего рейтинга шёл последовательно
// Вне транзакции блокировка снимается сразу и смысла не имеет
func (r *Repository) LockRatee(ctx context.Context, rateeID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", rateeID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockRatee - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockRatee - execute: %v", ErrExecQuery, err)
	}

	return nil
}

// ExistsForBooking проверяет, оценено ли бронирование
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("ratings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// RatedBookingIDs возвращает множество уже оценённых бронирований из списка
func (r *Repository) RatedBookingIDs(ctx context.Context, bookingIDs []string) (map[string]bool, error) {
	rated := make(map[string]bool, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return rated, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id").
		From("ratings").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RatedBookingIDs - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RatedBookingIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: RatedBookingIDs - scan booking_id: %v", ErrScanRow, err)
		}
		rated[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RatedBookingIDs - rows error: %v", ErrScanRow, err)
	}

	return rated, nil
}

// ListByRatee получает оценки музыканта, сначала новые
func (r *Repository) ListByRatee(ctx context.Context, rateeID string) ([]*domain.Rating, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ratingColumns...).
		From("ratings").
		Where(squirrel.Eq{"ratee_id": rateeID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRatee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRatee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ratings := make([]*domain.Rating, 0)
	for rows.Next() {
		var rating domain.Rating
		var createdAt sql.NullTime

		err := rows.Scan(
			&rating.ID,
			&rating.BookingID,
			&rating.RaterID,
			&rating.RateeID,
			&rating.Score,
			&rating.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByRatee - scan row: %v", ErrScanRow, err)
		}

		rating.CreatedAt = createdAt.Time
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByRatee - rows error: %v", ErrScanRow, err)
	}

	return ratings, nil
}

// StatsByRatee сумма и количество оценок музыканта
func (r *Repository) StatsByRatee(ctx context.Context, rateeID string) (domain.RatingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(score), 0)", "COUNT(*)").
		From("ratings").
		Where(squirrel.Eq{"ratee_id": rateeID}).
		ToSql()

	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("%w: StatsByRatee - build query: %v", ErrBuildQuery, err)
	}

	var stats domain.RatingStats
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&stats.Sum, &stats.Count); err != nil {
		return domain.RatingStats{}, fmt.Errorf("%w: StatsByRatee - scan: %v", ErrScanRow, err)
	}

	return stats, nil
}
