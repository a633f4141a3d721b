package domain

import "time"

// BookingDraft черновик бронирования, накапливаемый шагами публичного визарда.
// Хранится сервер-сайд по opaque-токену с TTL вместо амбиентного состояния
// сессии - шаги визарда читают и дописывают черновик по токену.
type BookingDraft struct {
	Token string `json:"token"`

	// Шаг 1: контакты заказчика
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerAddress *string `json:"customerAddress,omitempty"`

	// Шаг 2: зал, дата, смена
	HallID    int64  `json:"hallId"`
	EventDate string `json:"eventDate"` // YYYY-MM-DD
	Shift     Shift  `json:"shift"`
	EventType string `json:"eventType"`
	Guests    int    `json:"guests"`

	// Шаг 3: меню и услуги
	MenuIDs    []int64 `json:"menuIds"`
	ServiceIDs []int64 `json:"serviceIds"`

	SpecialRequests *string `json:"specialRequests,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
