package create_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/testutil/memstore"
)

type countingMetrics struct{ created int }

func (m *countingMetrics) BookingCreated() { m.created++ }

type failingUsers struct{}

func (failingUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("connection refused")
}

func strPtr(s string) *string { return &s }

func newTestUseCase(t *testing.T) (*UseCase, *memstore.Store, *countingMetrics) {
	t.Helper()
	store := memstore.New()
	instruments := "guitar, vocals"
	store.PutUser(domain.User{ID: "c1", Name: "Carla", Role: domain.RoleContractor})
	store.PutUser(domain.User{
		ID:       "m1",
		Name:     "Marcos",
		Role:     domain.RoleMusician,
		Musician: &domain.MusicianProfile{Instruments: &instruments},
	})

	m := &countingMetrics{}
	uc := NewUseCase(store.Bookings(), store.Users(), m, memstore.NopLogger{})
	return uc, store, m
}

func contractorActor() domain.Actor {
	return domain.Actor{UserID: "c1", Role: domain.RoleContractor}
}

func TestUseCase_Execute_NormalizesDateAndForcesPending(t *testing.T) {
	uc, store, m := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        contractorActor(),
		ContractorID: "c1",
		MusicianID:   "m1",
		EventDate:    "10/05/2026",
		Location:     strPtr("Hall A"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.True(t, domain.IsBookingID(resp.ID))
	assert.Equal(t, "2026-05-10", resp.EventDate)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Hall A", *resp.Location)
	assert.Equal(t, 1, m.created)

	stored, err := store.Bookings().GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "2026-05-10", stored.EventDate)
}

func TestUseCase_Execute_ResolvesNamesFromIdentityStore(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        contractorActor(),
		ContractorID: "c1",
		MusicianID:   "m1",
		EventDate:    "2026-05-10",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.ContractorName)
	require.NotNil(t, resp.MusicianName)
	require.NotNil(t, resp.Instruments)
	assert.Equal(t, "Carla", *resp.ContractorName)
	assert.Equal(t, "Marcos", *resp.MusicianName)
	assert.Equal(t, "guitar, vocals", *resp.Instruments)
}

func TestUseCase_Execute_KeepsSuppliedNames(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:          contractorActor(),
		ContractorID:   "c1",
		MusicianID:     "m1",
		ContractorName: strPtr("Carla Events"),
		MusicianName:   strPtr("MC Marcos"),
		Instruments:    strPtr("drums"),
		EventDate:      "2026-05-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "Carla Events", *resp.ContractorName)
	assert.Equal(t, "MC Marcos", *resp.MusicianName)
	assert.Equal(t, "drums", *resp.Instruments)
}

func TestUseCase_Execute_ToleratesUnknownParties(t *testing.T) {
	uc, _, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        domain.Actor{UserID: "c9", Role: domain.RoleContractor},
		ContractorID: "c9",
		MusicianID:   "m9",
		EventDate:    "2026-05-10",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.ContractorName)
	assert.Nil(t, resp.MusicianName)
}

func TestUseCase_Execute_IdentityStoreFailure(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(store.Bookings(), failingUsers{}, &countingMetrics{}, memstore.NopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:        contractorActor(),
		ContractorID: "c1",
		MusicianID:   "m1",
		EventDate:    "2026-05-10",
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	long := make([]rune, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "missing contractor",
			req:     Request{MusicianID: "m1", EventDate: "2026-05-10"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing musician",
			req:     Request{ContractorID: "c1", EventDate: "2026-05-10"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "same user on both sides",
			req:     Request{ContractorID: "c1", MusicianID: "c1", EventDate: "2026-05-10"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     Request{ContractorID: "c1", MusicianID: "m1"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "not a date",
			req:     Request{ContractorID: "c1", MusicianID: "m1", EventDate: "next friday"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible calendar date",
			req:     Request{ContractorID: "c1", MusicianID: "m1", EventDate: "31/02/2026"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "notes too long",
			req:     Request{ContractorID: "c1", MusicianID: "m1", EventDate: "2026-05-10", Notes: strPtr(string(long))},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, m := newTestUseCase(t)
			tt.req.Actor = contractorActor()

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, m.created)

			all, err := store.Bookings().List(context.Background(), nil)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestUseCase_Execute_Access(t *testing.T) {
	req := func(actor domain.Actor) *Request {
		return &Request{Actor: actor, ContractorID: "c1", MusicianID: "m1", EventDate: "2026-05-10"}
	}

	t.Run("another contractor", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)
		_, err := uc.Execute(context.Background(), req(domain.Actor{UserID: "c2", Role: domain.RoleContractor}))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("musician cannot hire", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)
		_, err := uc.Execute(context.Background(), req(domain.Actor{UserID: "c1", Role: domain.RoleMusician}))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin on behalf of contractor", func(t *testing.T) {
		uc, _, _ := newTestUseCase(t)
		_, err := uc.Execute(context.Background(), req(domain.Actor{UserID: "root", Role: domain.RoleAdmin}))
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_UsesGeneratedID(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	uc.newID = func() string { return "11111111-1111-1111-1111-111111111111" }

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:        contractorActor(),
		ContractorID: "c1",
		MusicianID:   "m1",
		EventDate:    "10-05-2026",
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", resp.ID)
	assert.Equal(t, "2026-05-10", resp.EventDate)
}
