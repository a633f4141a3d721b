package invoices

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invoices: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("invoices: booking not found")

	// ErrRender возвращается при ошибке генерации PDF
	ErrRender = errors.New("invoices: failed to render pdf")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("invoices: internal error")
)
