package domain

import "time"

// Customer заказчик бронирования.
// Ищется по телефону (get-or-create при создании бронирования) - строгая
// уникальность телефона не гарантируется, только поиск последнего совпадения.
type Customer struct {
	ID        int64
	FullName  string
	Phone     string
	Email     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
