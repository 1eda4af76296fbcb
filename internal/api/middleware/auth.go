package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GigBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

type actorKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Claims токен выдаёт Identity Store: sub - ID пользователя, role - его роль
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет Bearer токен (HS256) и кладёт вызывающего в контекст запроса
func Auth(secret []byte, log Logger) mux.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (interface{}, error) { return secret, nil }
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				log.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w)
				return
			}

			actor, err := parseActor(parser, keyFunc, tokenString)
			if err != nil {
				log.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func parseActor(parser *jwt.Parser, keyFunc jwt.Keyfunc, tokenString string) (domain.Actor, error) {
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(tokenString, claims, keyFunc); err != nil {
		return domain.Actor{}, err
	}

	if claims.Subject == "" {
		return domain.Actor{}, errors.New("token has no subject")
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return domain.Actor{}, errors.New("token has unknown role")
	}

	return domain.Actor{UserID: claims.Subject, Role: role}, nil
}

// WithActor кладёт вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor достаёт вызывающего из контекста; ok == false, если запрос не прошёл Auth
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
