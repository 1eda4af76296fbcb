package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidStatus возвращается для статуса вне допустимого набора
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTransition возвращается, когда из текущего статуса нельзя перейти в запрошенный
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrBookingHasRating возвращается при удалении уже оценённого бронирования
	ErrBookingHasRating = errors.New("booking has a rating and cannot be deleted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
