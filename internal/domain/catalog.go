package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityStatus статус справочной сущности (площадка, зал, меню, услуга)
type EntityStatus string

const (
	EntityActive   EntityStatus = "active"
	EntityInactive EntityStatus = "inactive"
)

// Venue represents a venue that owns one or more halls
type Venue struct {
	ID        int64
	Name      string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hall represents a bookable hall within a venue
type Hall struct {
	ID        int64
	VenueID   int64
	Name      string
	Capacity  int
	BasePrice decimal.Decimal
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Menu позиция меню с ценой за человека.
// Привязывается к залам через таблицу hall_menus (many-to-many).
type Menu struct {
	ID             int64
	Name           string
	PricePerPerson decimal.Decimal
	Status         EntityStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AdditionalService дополнительная услуга с фиксированной ценой
// (не зависит от числа гостей - намеренная асимметрия с меню)
type AdditionalService struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Category  *string
	Status    EntityStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the hall can accept new bookings
func (h *Hall) IsActive() bool {
	return h.Status == EntityActive
}

// FitsGuests проверяет, что число гостей не превышает вместимость зала
func (h *Hall) FitsGuests(guests int) bool {
	return guests <= h.Capacity
}
