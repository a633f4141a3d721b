package create_draft

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// DraftRequest HTTP request model: состояние визарда на момент сохранения.
// Любое поле может быть пустым - визард дописывает их по шагам.
type DraftRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerAddress *string `json:"customerAddress,omitempty"`

	HallID    int64  `json:"hallId"`
	EventDate string `json:"eventDate"`
	Shift     string `json:"shift"`
	EventType string `json:"eventType"`
	Guests    int    `json:"guests"`

	MenuIDs    []int64 `json:"menuIds"`
	ServiceIDs []int64 `json:"serviceIds"`

	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	Token string `json:"token"`

	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerAddress *string `json:"customerAddress,omitempty"`

	HallID    int64  `json:"hallId"`
	EventDate string `json:"eventDate"`
	Shift     string `json:"shift"`
	EventType string `json:"eventType"`
	Guests    int    `json:"guests"`

	MenuIDs    []int64 `json:"menuIds"`
	ServiceIDs []int64 `json:"serviceIds"`

	SpecialRequests *string `json:"specialRequests,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToDomain конвертирует HTTP запрос в доменный черновик
func (r *DraftRequest) ToDomain() *domain.BookingDraft {
	return &domain.BookingDraft{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		CustomerAddress: r.CustomerAddress,
		HallID:          r.HallID,
		EventDate:       r.EventDate,
		Shift:           domain.Shift(r.Shift),
		EventType:       r.EventType,
		Guests:          r.Guests,
		MenuIDs:         r.MenuIDs,
		ServiceIDs:      r.ServiceIDs,
		SpecialRequests: r.SpecialRequests,
	}
}

// FromDomain конвертирует доменный черновик в HTTP response
func FromDomain(d *domain.BookingDraft) *DraftResponse {
	return &DraftResponse{
		Token:           d.Token,
		CustomerName:    d.CustomerName,
		CustomerPhone:   d.CustomerPhone,
		CustomerEmail:   d.CustomerEmail,
		CustomerAddress: d.CustomerAddress,
		HallID:          d.HallID,
		EventDate:       d.EventDate,
		Shift:           string(d.Shift),
		EventType:       d.EventType,
		Guests:          d.Guests,
		MenuIDs:         d.MenuIDs,
		ServiceIDs:      d.ServiceIDs,
		SpecialRequests: d.SpecialRequests,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
}
