package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

var secret = []byte("test-secret")

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, sub, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func protectedHandler(seen *domain.Actor) http.Handler {
	return Auth(secret, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if ok {
			*seen = actor
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	var seen domain.Actor
	h := protectedHandler(&seen)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.SigningMethodHS256, secret, "c1", "contractor", time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.Actor{UserID: "c1", Role: domain.RoleContractor}, seen)
}

func TestAuth_Rejects(t *testing.T) {
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic YzE6cGFzcw=="},
		{name: "garbage", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), "c1", "contractor", future)},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, "c1", "contractor", time.Now().Add(-time.Hour))},
		{name: "no subject", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, "", "contractor", future)},
		{name: "unknown role", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, "c1", "manager", future)},
		{name: "other algorithm", header: "Bearer " + sign(t, jwt.SigningMethodHS512, secret, "c1", "contractor", future)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen domain.Actor
			h := protectedHandler(&seen)

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"code":401,"message":"требуется авторизация"}`, rec.Body.String())
			assert.Empty(t, seen.UserID)
		})
	}
}

type observation struct {
	method string
	route  string
	status int
}

type fakeRecorder struct{ seen []observation }

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	rec := &fakeRecorder{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, rec.seen, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/bookings/{bookingId}", status: http.StatusNotFound}, rec.seen[0])
}
