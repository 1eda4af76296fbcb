package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дату события нельзя привести к YYYY-MM-DD
	ErrInvalidDate = errors.New("create_booking: invalid event date")

	// ErrAccessDenied возвращается, когда бронирование создаёт не сам контрактор
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
