package quote_booking

import (
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	HallID     int64   `json:"hallId"`
	MenuIDs    []int64 `json:"menuIds"`
	Guests     int     `json:"guests"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// MenuLineResponse строка расчёта по меню
type MenuLineResponse struct {
	MenuID         int64  `json:"menuId"`
	MenuName       string `json:"menuName"`
	PricePerPerson string `json:"pricePerPerson"`
	Guests         int    `json:"guests"`
	TotalPrice     string `json:"totalPrice"`
}

// ServiceLineResponse строка расчёта по услуге
type ServiceLineResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Price       string `json:"price"`
	TotalPrice  string `json:"totalPrice"`
}

// QuoteResponse HTTP response model. Все суммы - строки с двумя знаками,
// чтобы не терять точность в JSON числах.
type QuoteResponse struct {
	HallPrice         string                `json:"hallPrice"`
	MenuTotal         string                `json:"menuTotal"`
	ServicesTotal     string                `json:"servicesTotal"`
	Subtotal          string                `json:"subtotal"`
	TaxRate           string                `json:"taxRate"`
	TaxAmount         string                `json:"taxAmount"`
	GrandTotal        string                `json:"grandTotal"`
	AdvancePercentage string                `json:"advancePercentage"`
	AdvanceAmount     string                `json:"advanceAmount"`
	Currency          string                `json:"currency"`
	CurrencySymbol    string                `json:"currencySymbol"`
	MenuLines         []MenuLineResponse    `json:"menuLines"`
	ServiceLines      []ServiceLineResponse `json:"serviceLines"`
}

// FromQuote конвертирует расчёт в HTTP response
func FromQuote(quote *pricing.Quote, advance *pricing.Advance) *QuoteResponse {
	resp := &QuoteResponse{
		HallPrice:         quote.HallPrice.StringFixed(2),
		MenuTotal:         quote.MenuTotal.StringFixed(2),
		ServicesTotal:     quote.ServicesTotal.StringFixed(2),
		Subtotal:          quote.Subtotal.StringFixed(2),
		TaxRate:           quote.TaxRate.StringFixed(2),
		TaxAmount:         quote.TaxAmount.StringFixed(2),
		GrandTotal:        quote.GrandTotal.StringFixed(2),
		AdvancePercentage: advance.Percentage.StringFixed(2),
		AdvanceAmount:     advance.Amount.StringFixed(2),
		Currency:          quote.Currency,
		CurrencySymbol:    quote.CurrencySymbol,
		MenuLines:         make([]MenuLineResponse, 0, len(quote.MenuLines)),
		ServiceLines:      make([]ServiceLineResponse, 0, len(quote.ServiceLines)),
	}
	for _, line := range quote.MenuLines {
		resp.MenuLines = append(resp.MenuLines, MenuLineResponse{
			MenuID:         line.MenuID,
			MenuName:       line.MenuName,
			PricePerPerson: line.PricePerPerson.StringFixed(2),
			Guests:         line.NumberOfGuests,
			TotalPrice:     line.TotalPrice.StringFixed(2),
		})
	}
	for _, line := range quote.ServiceLines {
		resp.ServiceLines = append(resp.ServiceLines, ServiceLineResponse{
			ServiceID:   line.ServiceID,
			ServiceName: line.ServiceName,
			Price:       line.Price.StringFixed(2),
			TotalPrice:  line.TotalPrice.StringFixed(2),
		})
	}
	return resp
}
