package get_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

// CustomerResponse блок заказчика
type CustomerResponse struct {
	ID       int64   `json:"id"`
	FullName string  `json:"fullName"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// MenuLineResponse строка позиции меню
type MenuLineResponse struct {
	MenuID         int64  `json:"menuId"`
	MenuName       string `json:"menuName"`
	PricePerPerson string `json:"pricePerPerson"`
	Guests         int    `json:"guests"`
	TotalPrice     string `json:"totalPrice"`
}

// ServiceLineResponse строка позиции услуги
type ServiceLineResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Price       string `json:"price"`
	AddedBy     string `json:"addedBy"`
	TotalPrice  string `json:"totalPrice"`
}

// PaymentResponse платеж по бронированию
type PaymentResponse struct {
	ID            int64   `json:"id"`
	PaidAmount    string  `json:"paidAmount"`
	Status        string  `json:"status"`
	MethodName    string  `json:"methodName"`
	TransactionID *string `json:"transactionId,omitempty"`
	PaymentDate   string  `json:"paymentDate"`
	SlipFile      *string `json:"slipFile,omitempty"`
}

// BookingDetailsResponse HTTP response model: карточка бронирования
// с позициями, заказчиком, платежами и расчётным остатком
type BookingDetailsResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	HallID        int64  `json:"hallId"`
	HallName      string `json:"hallName"`
	EventDate     string `json:"eventDate"`
	Shift         string `json:"shift"`
	EventType     string `json:"eventType"`
	Guests        int    `json:"guests"`

	Customer CustomerResponse `json:"customer"`

	HallPrice     string `json:"hallPrice"`
	MenuTotal     string `json:"menuTotal"`
	ServicesTotal string `json:"servicesTotal"`
	Subtotal      string `json:"subtotal"`
	TaxAmount     string `json:"taxAmount"`
	GrandTotal    string `json:"grandTotal"`

	AdvancePercentage      string `json:"advancePercentage"`
	AdvanceAmount          string `json:"advanceAmount"`
	AdvancePaymentReceived bool   `json:"advancePaymentReceived"`
	VerifiedPaidSum        string `json:"verifiedPaidSum"`
	BalanceDue             string `json:"balanceDue"`

	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`

	SpecialRequests *string `json:"specialRequests,omitempty"`
	BookingStatus   string  `json:"bookingStatus"`
	PaymentStatus   string  `json:"paymentStatus"`

	Menus    []MenuLineResponse    `json:"menus"`
	Services []ServiceLineResponse `json:"services"`
	Payments []PaymentResponse     `json:"payments"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// FromDetails конвертирует карточку бронирования в HTTP response
func FromDetails(d *bookings.Details) *BookingDetailsResponse {
	b := d.Booking
	resp := &BookingDetailsResponse{
		ID:            b.ID,
		BookingNumber: b.BookingNumber,
		HallID:        b.HallID,
		HallName:      d.Hall.Name,
		EventDate:     b.EventDate.Format(domain.DateFormat),
		Shift:         string(b.Shift),
		EventType:     b.EventType,
		Guests:        b.NumberOfGuests,
		Customer: CustomerResponse{
			ID:       d.Customer.ID,
			FullName: d.Customer.FullName,
			Phone:    d.Customer.Phone,
			Email:    d.Customer.Email,
			Address:  d.Customer.Address,
		},
		HallPrice:              b.HallPrice.StringFixed(2),
		MenuTotal:              b.MenuTotal.StringFixed(2),
		ServicesTotal:          b.ServicesTotal.StringFixed(2),
		Subtotal:               b.Subtotal.StringFixed(2),
		TaxAmount:              b.TaxAmount.StringFixed(2),
		GrandTotal:             b.GrandTotal.StringFixed(2),
		AdvancePercentage:      d.AdvancePercentage.StringFixed(2),
		AdvanceAmount:          d.AdvanceAmount.StringFixed(2),
		AdvancePaymentReceived: b.AdvancePaymentReceived,
		VerifiedPaidSum:        d.VerifiedPaidSum.StringFixed(2),
		BalanceDue:             d.BalanceDue.StringFixed(2),
		Currency:               d.Currency,
		CurrencySymbol:         d.CurrencySymbol,
		SpecialRequests:        b.SpecialRequests,
		BookingStatus:          string(b.BookingStatus),
		PaymentStatus:          string(b.PaymentStatus),
		Menus:                  make([]MenuLineResponse, 0, len(b.Menus)),
		Services:               make([]ServiceLineResponse, 0, len(b.Services)),
		Payments:               make([]PaymentResponse, 0, len(d.Payments)),
		CreatedAt:              b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              b.UpdatedAt.Format(time.RFC3339),
	}
	for _, m := range b.Menus {
		resp.Menus = append(resp.Menus, MenuLineResponse{
			MenuID:         m.MenuID,
			MenuName:       m.MenuName,
			PricePerPerson: m.PricePerPerson.StringFixed(2),
			Guests:         m.NumberOfGuests,
			TotalPrice:     m.TotalPrice.StringFixed(2),
		})
	}
	for _, s := range b.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID:   s.ServiceID,
			ServiceName: s.ServiceName,
			Price:       s.Price.StringFixed(2),
			AddedBy:     string(s.AddedBy),
			TotalPrice:  s.TotalPrice.StringFixed(2),
		})
	}
	for _, p := range d.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:            p.ID,
			PaidAmount:    p.PaidAmount.StringFixed(2),
			Status:        string(p.Status),
			MethodName:    p.MethodName,
			TransactionID: p.TransactionID,
			PaymentDate:   p.PaymentDate.Format(domain.DateFormat),
			SlipFile:      p.SlipFile,
		})
	}
	return resp
}
