package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

var userColumns = []string{
	"id", "name", "email", "phone", "role",
	"user_id", "instruments", "location", "description", "average_rating", "ratings_count",
}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("musician with profile", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .* FROM users u LEFT JOIN musicians m ON m.user_id = u.id WHERE u.id = \$1`).
			WithArgs("m1").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("m1", "João", "joao@example.com", nil, "musician", "m1", "guitar", "Recife", nil, 4.5, 2))

		u, err := repo.GetByID(context.Background(), "m1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleMusician, u.Role)
		require.NotNil(t, u.Musician)
		assert.Equal(t, 4.5, u.Musician.AverageRating)
		assert.Equal(t, 2, u.Musician.RatingsCount)
		assert.Nil(t, u.Phone)
	})

	t.Run("contractor has no profile", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .* FROM users u`).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("c1", "Carla", nil, nil, "contractor", nil, nil, nil, nil, nil, nil))

		u, err := repo.GetByID(context.Background(), "c1")
		require.NoError(t, err)
		assert.Nil(t, u.Musician)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .* FROM users u`).
			WithArgs("x").
			WillReturnRows(sqlmock.NewRows(userColumns))

		_, err := repo.GetByID(context.Background(), "x")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_UpdateRatingStats(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(`UPDATE musicians SET average_rating = \$1, ratings_count = \$2 WHERE user_id = \$3`).
		WithArgs(4.67, 3, "m1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE musicians`).
		WithArgs(5.0, 1, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, repo.UpdateRatingStats(ctx, "m1", domain.RatingStats{Sum: 14, Count: 3}))
	assert.ErrorIs(t, repo.UpdateRatingStats(ctx, "ghost", domain.RatingStats{Sum: 5, Count: 1}), ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
