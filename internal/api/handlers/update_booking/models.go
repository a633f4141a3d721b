package update_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	updateBooking "github.com/m04kA/SMC-VenueService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model. Форма редактирования шлет полное
// состояние бронирования; позиции заменяются целиком.
type UpdateBookingRequest struct {
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

	BookingStatus          string `json:"bookingStatus"`
	PaymentStatus          string `json:"paymentStatus"`
	AdvancePaymentReceived bool   `json:"advancePaymentReceived"`
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

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	CustomerID    int64  `json:"customerId"`
	HallID        int64  `json:"hallId"`
	EventDate     string `json:"eventDate"`
	Shift         string `json:"shift"`
	EventType     string `json:"eventType"`
	Guests        int    `json:"guests"`

	HallPrice     string `json:"hallPrice"`
	MenuTotal     string `json:"menuTotal"`
	ServicesTotal string `json:"servicesTotal"`
	Subtotal      string `json:"subtotal"`
	TaxRate       string `json:"taxRate"`
	TaxAmount     string `json:"taxAmount"`
	GrandTotal    string `json:"grandTotal"`

	AdvancePercentage      string `json:"advancePercentage"`
	AdvanceAmount          string `json:"advanceAmount"`
	AdvancePaymentReceived bool   `json:"advancePaymentReceived"`

	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`

	SpecialRequests *string `json:"specialRequests,omitempty"`
	BookingStatus   string  `json:"bookingStatus"`
	PaymentStatus   string  `json:"paymentStatus"`

	Menus    []MenuLineResponse    `json:"menus"`
	Services []ServiceLineResponse `json:"services"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64, actor string) (*updateBooking.Request, error) {
	eventDate, err := time.Parse(domain.DateFormat, r.EventDate)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		BookingID:              bookingID,
		CustomerName:           r.CustomerName,
		CustomerPhone:          r.CustomerPhone,
		CustomerEmail:          r.CustomerEmail,
		CustomerAddress:        r.CustomerAddress,
		HallID:                 r.HallID,
		EventDate:              eventDate,
		Shift:                  domain.Shift(r.Shift),
		EventType:              r.EventType,
		Guests:                 r.Guests,
		MenuIDs:                r.MenuIDs,
		ServiceIDs:             r.ServiceIDs,
		SpecialRequests:        r.SpecialRequests,
		BookingStatus:          domain.BookingStatus(r.BookingStatus),
		PaymentStatus:          domain.PaymentStatus(r.PaymentStatus),
		AdvancePaymentReceived: r.AdvancePaymentReceived,
		AddedBy:                domain.AddedByAdmin,
		Actor:                  actor,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                     resp.ID,
		BookingNumber:          resp.BookingNumber,
		CustomerID:             resp.CustomerID,
		HallID:                 resp.HallID,
		EventDate:              resp.EventDate.Format(domain.DateFormat),
		Shift:                  string(resp.Shift),
		EventType:              resp.EventType,
		Guests:                 resp.Guests,
		HallPrice:              resp.HallPrice.StringFixed(2),
		MenuTotal:              resp.MenuTotal.StringFixed(2),
		ServicesTotal:          resp.ServicesTotal.StringFixed(2),
		Subtotal:               resp.Subtotal.StringFixed(2),
		TaxRate:                resp.TaxRate.StringFixed(2),
		TaxAmount:              resp.TaxAmount.StringFixed(2),
		GrandTotal:             resp.GrandTotal.StringFixed(2),
		AdvancePercentage:      resp.AdvancePercentage.StringFixed(2),
		AdvanceAmount:          resp.AdvanceAmount.StringFixed(2),
		AdvancePaymentReceived: resp.AdvancePaymentReceived,
		Currency:               resp.Currency,
		CurrencySymbol:         resp.CurrencySymbol,
		SpecialRequests:        resp.SpecialRequests,
		BookingStatus:          string(resp.BookingStatus),
		PaymentStatus:          string(resp.PaymentStatus),
		Menus:                  make([]MenuLineResponse, 0, len(resp.Menus)),
		Services:               make([]ServiceLineResponse, 0, len(resp.Services)),
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}
	for _, m := range resp.Menus {
		out.Menus = append(out.Menus, MenuLineResponse{
			MenuID:         m.MenuID,
			MenuName:       m.MenuName,
			PricePerPerson: m.PricePerPerson.StringFixed(2),
			Guests:         m.NumberOfGuests,
			TotalPrice:     m.TotalPrice.StringFixed(2),
		})
	}
	for _, s := range resp.Services {
		out.Services = append(out.Services, ServiceLineResponse{
			ServiceID:   s.ServiceID,
			ServiceName: s.ServiceName,
			Price:       s.Price.StringFixed(2),
			AddedBy:     string(s.AddedBy),
			TotalPrice:  s.TotalPrice.StringFixed(2),
		})
	}
	return out
}
