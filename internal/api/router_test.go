package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
	"github.com/m04kA/SMC-GigBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-GigBookingService/internal/service/queries"
	"github.com/m04kA/SMC-GigBookingService/internal/service/ratings"
	"github.com/m04kA/SMC-GigBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-GigBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-GigBookingService/internal/usecase/submit_rating"
	"github.com/m04kA/SMC-GigBookingService/pkg/metrics"
)

var jwtSecret = []byte("router-test-secret")

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	store  *memstore.Store
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memstore.New()
	instruments := "guitar"
	store.PutUser(domain.User{ID: "C1", Name: "Carla", Role: domain.RoleContractor})
	store.PutUser(domain.User{ID: "M1", Name: "Marcos", Role: domain.RoleMusician, Musician: &domain.MusicianProfile{Instruments: &instruments}})

	log := memstore.NopLogger{}
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("gig-booking-test", reg)
	cache := memstore.NewProfileCache(store.Users())

	bookingSvc := bookings.NewService(store.Bookings(), store.Ratings(), store.TxManager(), m, log)

	router := NewRouter(Services{
		CreateBooking: create_booking.NewUseCase(store.Bookings(), cache, m, log),
		SubmitRating:  submit_rating.NewUseCase(store.Bookings(), store.Ratings(), store.Users(), cache, store.TxManager(), m, log),
		Bookings:      bookingSvc,
		Queries:       queries.NewService(bookingSvc, store.Ratings(), cache, log),
		Ratings:       ratings.NewService(store.Ratings(), log),
	}, Options{
		JWTSecret:      jwtSecret,
		Metrics:        m,
		MetricsPath:    "/metrics",
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, log)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	ts := &testServer{t: t, srv: srv, store: store, tokens: map[string]string{}}
	ts.tokens["C1"] = ts.sign("C1", domain.RoleContractor)
	ts.tokens["C2"] = ts.sign("C2", domain.RoleContractor)
	ts.tokens["M1"] = ts.sign("M1", domain.RoleMusician)
	return ts
}

func (ts *testServer) sign(sub string, role domain.Role) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := token.SignedString(jwtSecret)
	require.NoError(ts.t, err)
	return s
}

func (ts *testServer) do(method, path, as string, body interface{}) (int, []byte) {
	ts.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(ts.t, err)
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+ts.tokens[as])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(ts.t, err)
	return resp.StatusCode, buf.Bytes()
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type bookingJSON struct {
	ID           string `json:"id"`
	ContractorID string `json:"contractorId"`
	MusicianID   string `json:"musicianId"`
	MusicianName string `json:"musicianName"`
	EventDate    string `json:"eventDate"`
	Location     string `json:"location"`
	Status       string `json:"status"`
	Rated        bool   `json:"rated"`
	Musician     struct {
		ID            string   `json:"id"`
		AverageRating *float64 `json:"averageRating"`
	} `json:"musician"`
}

type errorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (ts *testServer) createBooking(as string, body map[string]interface{}) bookingJSON {
	ts.t.Helper()
	code, data := ts.do(http.MethodPost, "/api/v1/bookings", as, body)
	require.Equal(ts.t, http.StatusCreated, code, string(data))
	return decode[bookingJSON](ts.t, data)
}

func TestRouter_HireConfirmRateScenario(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createBooking("C1", map[string]interface{}{
		"contractorId": "C1",
		"musicianId":   "M1",
		"eventDate":    "10/05/2026",
		"location":     "Hall A",
		"status":       "confirmed",
	})
	assert.Equal(t, "2026-05-10", created.EventDate)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "Marcos", created.MusicianName)

	code, data := ts.do(http.MethodGet, "/api/v1/bookings/"+created.ID, "C1", nil)
	require.Equal(t, http.StatusOK, code)
	got := decode[bookingJSON](t, data)
	assert.Equal(t, "2026-05-10", got.EventDate)
	assert.Equal(t, "pending", got.Status)
	assert.False(t, got.Rated)

	// Рано оценивать: бронирование ещё не подтверждено
	code, _ = ts.do(http.MethodPost, "/api/v1/ratings", "C1", map[string]interface{}{"bookingId": created.ID, "score": 4})
	assert.Equal(t, http.StatusConflict, code)

	code, data = ts.do(http.MethodPut, "/api/v1/bookings/"+created.ID, "M1", map[string]string{"status": "confirmado"})
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "confirmed", decode[bookingJSON](t, data).Status)

	code, data = ts.do(http.MethodPost, "/api/v1/ratings", "C1", map[string]interface{}{
		"bookingId": created.ID,
		"score":     4,
		"comment":   "Great show",
	})
	require.Equal(t, http.StatusCreated, code, string(data))
	rating := decode[struct {
		RaterID         string  `json:"raterId"`
		RateeID         string  `json:"rateeId"`
		MusicianAverage float64 `json:"musicianAverage"`
	}](t, data)
	assert.Equal(t, "C1", rating.RaterID)
	assert.Equal(t, "M1", rating.RateeID)
	assert.Equal(t, 4.0, rating.MusicianAverage)

	code, data = ts.do(http.MethodGet, "/api/v1/ratings/musician/M1", "C1", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	}](t, data)
	assert.Equal(t, 4.0, list.Average)
	assert.Equal(t, 1, list.Count)

	code, data = ts.do(http.MethodGet, "/api/v1/bookings/"+created.ID, "M1", nil)
	require.Equal(t, http.StatusOK, code)
	got = decode[bookingJSON](t, data)
	assert.True(t, got.Rated)
	require.NotNil(t, got.Musician.AverageRating)
	assert.Equal(t, 4.0, *got.Musician.AverageRating)

	code, data = ts.do(http.MethodGet, "/api/v1/bookings/"+created.ID+"/rating", "M1", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"bookingId":"`+created.ID+`","rated":true}`, string(data))

	// Вторая оценка и удаление оценённого бронирования - конфликты
	code, _ = ts.do(http.MethodPost, "/api/v1/ratings", "C1", map[string]interface{}{"bookingId": created.ID, "score": 3})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(http.MethodDelete, "/api/v1/bookings/"+created.ID, "C1", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestRouter_Errors(t *testing.T) {
	ts := newTestServer(t)
	booking := ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-10"})

	tests := []struct {
		name   string
		method string
		path   string
		as     string
		body   interface{}
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/bookings", "", nil, http.StatusUnauthorized},
		{"bad date", http.MethodPost, "/api/v1/bookings", "C1", map[string]string{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026/05/10"}, http.StatusBadRequest},
		{"book for someone else", http.MethodPost, "/api/v1/bookings", "C2", map[string]string{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-10"}, http.StatusForbidden},
		{"malformed json", http.MethodPost, "/api/v1/bookings", "C1", "not an object", http.StatusBadRequest},
		{"unknown booking", http.MethodGet, "/api/v1/bookings/" + uuid.NewString(), "C1", nil, http.StatusNotFound},
		{"unknown status", http.MethodPut, "/api/v1/bookings/" + booking.ID, "M1", map[string]string{"status": "done"}, http.StatusBadRequest},
		{"empty status", http.MethodPut, "/api/v1/bookings/" + booking.ID, "M1", map[string]string{"status": ""}, http.StatusBadRequest},
		{"contractor confirms", http.MethodPut, "/api/v1/bookings/" + booking.ID, "C1", map[string]string{"status": "confirmed"}, http.StatusForbidden},
		{"score out of range", http.MethodPost, "/api/v1/ratings", "C1", map[string]interface{}{"bookingId": booking.ID, "score": 6}, http.StatusBadRequest},
		{"rating for unknown booking", http.MethodPost, "/api/v1/ratings", "C1", map[string]interface{}{"bookingId": uuid.NewString(), "score": 5}, http.StatusNotFound},
		{"stranger deletes", http.MethodDelete, "/api/v1/bookings/" + booking.ID, "C2", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := ts.do(tt.method, tt.path, tt.as, tt.body)
			require.Equal(t, tt.want, code, string(data))

			body := decode[errorJSON](t, data)
			assert.Equal(t, tt.want, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRouter_AcceptRefuseAndTerminalStates(t *testing.T) {
	ts := newTestServer(t)
	accepted := ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-10"})
	refused := ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-11"})

	code, data := ts.do(http.MethodPost, "/api/v1/bookings/"+accepted.ID+"/accept", "M1", nil)
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "confirmed", decode[bookingJSON](t, data).Status)

	code, data = ts.do(http.MethodPost, "/api/v1/bookings/"+refused.ID+"/refuse", "M1", nil)
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "cancelled", decode[bookingJSON](t, data).Status)

	code, _ = ts.do(http.MethodPut, "/api/v1/bookings/"+refused.ID, "M1", map[string]string{"status": "pendente"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = ts.do(http.MethodPost, "/api/v1/bookings/"+accepted.ID+"/refuse", "M1", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, data = ts.do(http.MethodDelete, "/api/v1/bookings/"+refused.ID, "M1", nil)
	require.Equal(t, http.StatusOK, code, string(data))

	code, _ = ts.do(http.MethodGet, "/api/v1/bookings/"+refused.ID, "M1", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_PartyListsNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	ts.store.PutUser(domain.User{ID: "M2", Name: "Maria", Role: domain.RoleMusician, Musician: &domain.MusicianProfile{}})

	first := ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-10"})
	second := ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M2", "eventDate": "2026-05-11"})
	third := ts.createBooking("C2", map[string]interface{}{"contractorId": "C2", "musicianId": "M1", "eventDate": "2026-05-12"})

	ids := func(path string) []string {
		code, data := ts.do(http.MethodGet, path, "C1", nil)
		require.Equal(t, http.StatusOK, code, string(data))
		list := decode[[]bookingJSON](t, data)
		out := make([]string, 0, len(list))
		for _, b := range list {
			out = append(out, b.ID)
		}
		return out
	}

	assert.Equal(t, []string{third.ID, first.ID}, ids("/api/v1/bookings/musician/M1"))
	assert.Equal(t, []string{second.ID, first.ID}, ids("/api/v1/bookings/contractor/C1"))
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, ids("/api/v1/bookings"))
	assert.Empty(t, ids("/api/v1/bookings/musician/nobody"))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.createBooking("C1", map[string]interface{}{"contractorId": "C1", "musicianId": "M1", "eventDate": "2026-05-10"})

	code, data := ts.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, code)

	body := string(data)
	assert.True(t, strings.Contains(body, "bookings_created_total"), body)
	assert.True(t, strings.Contains(body, `route="/api/v1/bookings"`), body)
}
