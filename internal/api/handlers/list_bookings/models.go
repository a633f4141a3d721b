package list_bookings

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

// BookingSummaryResponse строка списка бронирований (без позиций)
type BookingSummaryResponse struct {
	ID                     int64   `json:"id"`
	BookingNumber          string  `json:"bookingNumber"`
	CustomerID             int64   `json:"customerId"`
	HallID                 int64   `json:"hallId"`
	EventDate              string  `json:"eventDate"`
	Shift                  string  `json:"shift"`
	EventType              string  `json:"eventType"`
	Guests                 int     `json:"guests"`
	GrandTotal             string  `json:"grandTotal"`
	BookingStatus          string  `json:"bookingStatus"`
	PaymentStatus          string  `json:"paymentStatus"`
	AdvancePaymentReceived bool    `json:"advancePaymentReceived"`
	SpecialRequests        *string `json:"specialRequests,omitempty"`
	CreatedAt              string  `json:"createdAt"`
}

// ListBookingsResponse HTTP response model
type ListBookingsResponse struct {
	Bookings []BookingSummaryResponse `json:"bookings"`
	Total    int                      `json:"total"`
}

// FromBookings конвертирует список бронирований в HTTP response
func FromBookings(list []*domain.Booking) *ListBookingsResponse {
	resp := &ListBookingsResponse{
		Bookings: make([]BookingSummaryResponse, 0, len(list)),
		Total:    len(list),
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, BookingSummaryResponse{
			ID:                     b.ID,
			BookingNumber:          b.BookingNumber,
			CustomerID:             b.CustomerID,
			HallID:                 b.HallID,
			EventDate:              b.EventDate.Format(domain.DateFormat),
			Shift:                  string(b.Shift),
			EventType:              b.EventType,
			Guests:                 b.NumberOfGuests,
			GrandTotal:             b.GrandTotal.StringFixed(2),
			BookingStatus:          string(b.BookingStatus),
			PaymentStatus:          string(b.PaymentStatus),
			AdvancePaymentReceived: b.AdvancePaymentReceived,
			SpecialRequests:        b.SpecialRequests,
			CreatedAt:              b.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
