package rating

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	comment := "Great show"
	rating := func() *domain.Rating {
		return &domain.Rating{ID: "r1", BookingID: "b1", RaterID: "c1", RateeID: "m1", Score: 4, Comment: &comment}
	}

	t.Run("created", func(t *testing.T) {
		repo, mock := newRepo(t)
		now := time.Now().UTC()
		mock.ExpectQuery(`INSERT INTO ratings \(id,booking_id,rater_id,ratee_id,score,comment\)`).
			WithArgs("r1", "b1", "c1", "m1", 4, comment).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		created, err := repo.Create(context.Background(), rating())
		require.NoError(t, err)
		assert.Equal(t, now, created.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate booking", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO ratings`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "ratings_booking_id_key"})

		_, err := repo.Create(context.Background(), rating())
		assert.ErrorIs(t, err, ErrRatingAlreadyExists)
	})
}

func TestRepository_ExistsForBooking(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM ratings WHERE booking_id = \$1 \)`).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForBooking(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RatedBookingIDs(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT booking_id FROM ratings WHERE booking_id IN \(\$1,\$2\)`).
		WithArgs("b1", "b2").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow("b2"))

	rated, err := repo.RatedBookingIDs(context.Background(), []string{"b1", "b2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"b2": true}, rated)

	empty, err := repo.RatedBookingIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_StatsByRatee(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(score\), 0\), COUNT\(\*\) FROM ratings WHERE ratee_id = \$1`).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(14, 3))

	stats, err := repo.StatsByRatee(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingStats{Sum: 14, Count: 3}, stats)
	assert.Equal(t, 4.67, stats.Average())
}

func TestRepository_LockRatee(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.LockRatee(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByRatee(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM ratings WHERE ratee_id = \$1 ORDER BY created_at DESC`).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(ratingColumns).
			AddRow("r2", "b2", "c1", "m1", 5, nil, now).
			AddRow("r1", "b1", "c2", "m1", 3, "ok", now.Add(-time.Hour)))

	list, err := repo.ListByRatee(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].Comment)
	require.NotNil(t, list[1].Comment)
	assert.Equal(t, "ok", *list[1].Comment)
}
