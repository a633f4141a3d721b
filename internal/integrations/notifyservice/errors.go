package notifyservice

import "errors"

var (
	// ErrInvalidResponse возвращается при неожиданном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notifyservice: invalid response")

	// ErrServiceUnavailable возвращается, когда сервис уведомлений недоступен
	ErrServiceUnavailable = errors.New("notifyservice: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifyservice: internal error")
)
