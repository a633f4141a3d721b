package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (пропущено обязательное поле, гости <= 0, неизвестная смена)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = errors.New("create_booking: hall not found")

	// ErrHallInactive возвращается, когда зал выключен из бронирования
	ErrHallInactive = errors.New("create_booking: hall is inactive")

	// ErrCapacityExceeded возвращается, когда гостей больше вместимости зала
	ErrCapacityExceeded = errors.New("create_booking: guest count exceeds hall capacity")

	// ErrMenuNotFound возвращается, когда одно из меню не найдено
	ErrMenuNotFound = errors.New("create_booking: menu not found")

	// ErrMenuNotAssigned возвращается, когда меню не привязано к выбранному залу
	ErrMenuNotAssigned = errors.New("create_booking: menu is not assigned to this hall")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда слот зала уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
