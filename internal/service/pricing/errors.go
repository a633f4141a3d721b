package pricing

import "errors"

var (
	// ErrMenuNotFound возвращается, когда одно из выбранных меню не существует
	ErrMenuNotFound = errors.New("pricing: menu not found")

	// ErrServiceNotFound возвращается, когда одна из выбранных услуг не существует
	ErrServiceNotFound = errors.New("pricing: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках расчёта
	ErrInternal = errors.New("pricing: internal error")
)
