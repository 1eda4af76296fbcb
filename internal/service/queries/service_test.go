package queries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GigBookingService/internal/testutil/memstore"
)

func newTestService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()

	email := "carla@example.com"
	instruments := "sax"
	location := "Recife"
	store.PutUser(domain.User{ID: "c1", Name: "Carla", Email: &email, Role: domain.RoleContractor})
	store.PutUser(domain.User{
		ID:   "m1",
		Name: "Marcos",
		Role: domain.RoleMusician,
		Musician: &domain.MusicianProfile{
			Instruments:   &instruments,
			Location:      &location,
			AverageRating: 4.5,
			RatingsCount:  2,
		},
	})

	registry := bookings.NewService(store.Bookings(), store.Ratings(), store.TxManager(), nopMetrics{}, memstore.NopLogger{})
	svc := NewService(registry, store.Ratings(), memstore.NewProfileCache(store.Users()), memstore.NopLogger{})
	return svc, store
}

type nopMetrics struct{}

func (nopMetrics) StatusChanged(string) {}

func addBooking(t *testing.T, store *memstore.Store, contractorID, musicianID string) string {
	t.Helper()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		ID:           uuid.NewString(),
		ContractorID: contractorID,
		MusicianID:   musicianID,
		EventDate:    "2026-05-10",
		Status:       domain.StatusConfirmed,
	})
	require.NoError(t, err)
	return b.ID
}

func TestService_GetBooking(t *testing.T) {
	svc, store := newTestService(t)
	id := addBooking(t, store, "c1", "m1")

	view, err := svc.GetBooking(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, view.ID)
	assert.False(t, view.Rated)

	assert.Equal(t, "c1", view.Contractor.ID)
	require.NotNil(t, view.Contractor.Name)
	assert.Equal(t, "Carla", *view.Contractor.Name)
	assert.Equal(t, "carla@example.com", *view.Contractor.Email)
	assert.Nil(t, view.Contractor.AverageRating)

	assert.Equal(t, "Marcos", *view.Musician.Name)
	assert.Equal(t, "sax", *view.Musician.Instruments)
	assert.Equal(t, "Recife", *view.Musician.Location)
	assert.Equal(t, 4.5, *view.Musician.AverageRating)

	_, err = svc.GetBooking(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_RatedFlag(t *testing.T) {
	svc, store := newTestService(t)
	rated := addBooking(t, store, "c1", "m1")
	unrated := addBooking(t, store, "c1", "m1")

	_, err := store.Ratings().Create(context.Background(), &domain.Rating{
		ID: uuid.NewString(), BookingID: rated, RaterID: "c1", RateeID: "m1", Score: 5,
	})
	require.NoError(t, err)

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Bookings, 2)

	flags := map[string]bool{}
	for _, v := range list.Bookings {
		flags[v.ID] = v.Rated
	}
	assert.True(t, flags[rated])
	assert.False(t, flags[unrated])
}

func TestService_ListForParty(t *testing.T) {
	svc, store := newTestService(t)
	mine := addBooking(t, store, "c1", "m1")
	addBooking(t, store, "c2", "m2")

	asContractor, err := svc.ListForParty(context.Background(), "c1", domain.RoleContractor)
	require.NoError(t, err)
	require.Len(t, asContractor.Bookings, 1)
	assert.Equal(t, mine, asContractor.Bookings[0].ID)

	asMusician, err := svc.ListForParty(context.Background(), "m2", domain.RoleMusician)
	require.NoError(t, err)
	require.Len(t, asMusician.Bookings, 1)

	// Пользователей c2 и m2 нет в Identity Store
	view := asMusician.Bookings[0]
	assert.Equal(t, "c2", view.Contractor.ID)
	assert.Nil(t, view.Contractor.Name)
	assert.Equal(t, "m2", view.Musician.ID)
	assert.Nil(t, view.Musician.AverageRating)

	_, err = svc.ListForParty(context.Background(), "root", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
