package api

import (
	"net/http"

	"github.com/gorilla/mux"

	bookingDecisionHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/booking_decision"
	createBookingHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/get_booking"
	getMusicianRatingsHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/get_musician_ratings"
	getPartyBookingsHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/get_party_bookings"
	getRatingStatusHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/get_rating_status"
	listBookingsHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/list_bookings"
	submitRatingHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/submit_rating"
	updateBookingStatusHandler "github.com/m04kA/SMC-GigBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-GigBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-GigBookingService/internal/domain"
)

// BookingService команды реестра бронирований
type BookingService interface {
	updateBookingStatusHandler.BookingService
	bookingDecisionHandler.BookingService
	deleteBookingHandler.BookingService
}

// QueryService проекции бронирований для экранов
type QueryService interface {
	listBookingsHandler.QueryService
	getBookingHandler.QueryService
	getPartyBookingsHandler.QueryService
}

// RatingService чтение оценок
type RatingService interface {
	getRatingStatusHandler.RatingService
	getMusicianRatingsHandler.RatingService
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Services всё, что нужно HTTP слою
type Services struct {
	CreateBooking createBookingHandler.CreateBookingUseCase
	SubmitRating  submitRatingHandler.SubmitRatingUseCase
	Bookings      BookingService
	Queries       QueryService
	Ratings       RatingService
}

// Options настройки роутера
type Options struct {
	JWTSecret []byte

	// Если Metrics == nil, HTTP метрики не собираются и MetricsHandler не публикуется
	Metrics        middleware.HTTPRecorder
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает маршруты /api/v1
func NewRouter(svc Services, opts Options, log Logger) *mux.Router {
	createBooking := createBookingHandler.NewHandler(svc.CreateBooking, log)
	listBookings := listBookingsHandler.NewHandler(svc.Queries, log)
	getBooking := getBookingHandler.NewHandler(svc.Queries, log)
	getMusicianBookings := getPartyBookingsHandler.NewHandler(svc.Queries, domain.RoleMusician, "musicianId", log)
	getContractorBookings := getPartyBookingsHandler.NewHandler(svc.Queries, domain.RoleContractor, "contractorId", log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(svc.Bookings, log)
	acceptBooking := bookingDecisionHandler.NewHandler(svc.Bookings, bookingDecisionHandler.Accept, log)
	refuseBooking := bookingDecisionHandler.NewHandler(svc.Bookings, bookingDecisionHandler.Refuse, log)
	deleteBooking := deleteBookingHandler.NewHandler(svc.Bookings, log)
	getRatingStatus := getRatingStatusHandler.NewHandler(svc.Ratings, log)
	submitRating := submitRatingHandler.NewHandler(svc.SubmitRating, log)
	getMusicianRatings := getMusicianRatingsHandler.NewHandler(svc.Ratings, log)

	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		if opts.MetricsHandler != nil {
			// Metrics endpoint (публичный, без аутентификации)
			r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
		}
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(opts.JWTSecret, log))

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Экраны "мои бронирования" регистрируются раньше /bookings/{bookingId}
	api.HandleFunc("/bookings/musician/{musicianId}", getMusicianBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/contractor/{contractorId}", getContractorBookings.Handle).Methods(http.MethodGet)

	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBookingStatus.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/refuse", refuseBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/rating", getRatingStatus.Handle).Methods(http.MethodGet)

	// --- Оценки ---
	api.HandleFunc("/ratings", submitRating.Handle).Methods(http.MethodPost)
	api.HandleFunc("/ratings/musician/{musicianId}", getMusicianRatings.Handle).Methods(http.MethodGet)

	return r
}
