package submit_rating

import "errors"

var (
	// ErrBookingNotFound возвращается, когда оцениваемое бронирование не найдено
	ErrBookingNotFound = errors.New("submit_rating: booking not found")

	// ErrInvalidScore возвращается, когда оценка вне диапазона 1..5
	ErrInvalidScore = errors.New("submit_rating: score must be between 1 and 5")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_rating: invalid input data")

	// ErrAlreadyRated возвращается при повторной оценке бронирования
	ErrAlreadyRated = errors.New("submit_rating: booking already rated")

	// ErrBookingNotConfirmed возвращается, когда бронирование ещё не подтверждено музыкантом
	ErrBookingNotConfirmed = errors.New("submit_rating: booking is not confirmed")

	// ErrAccessDenied возвращается, когда оценку ставит не контрактор бронирования
	ErrAccessDenied = errors.New("submit_rating: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_rating: internal error")
)
