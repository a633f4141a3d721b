package notifyservice

// StatusChangeEvent событие смены статуса бронирования.
// Отправляется сервису уведомлений, который рассылает письма заказчику
// и менеджерам площадки.
type StatusChangeEvent struct {
	BookingNumber string `json:"bookingNumber"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone"`
	HallName      string `json:"hallName,omitempty"`
	EventDate     string `json:"eventDate"` // YYYY-MM-DD
	Shift         string `json:"shift"`

	// Что изменилось; пустое значение = поле не менялось
	OldBookingStatus string `json:"oldBookingStatus,omitempty"`
	NewBookingStatus string `json:"newBookingStatus,omitempty"`
	OldPaymentStatus string `json:"oldPaymentStatus,omitempty"`
	NewPaymentStatus string `json:"newPaymentStatus,omitempty"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
