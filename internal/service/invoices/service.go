package invoices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/signintech/gopdf"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/SMC-VenueService/internal/config"
	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

const (
	fontName     = "invoice"
	pageLeft     = 40.0
	amountsRight = 380.0
	lineHeight   = 18.0
	qrSize       = 256
)

// Service генерация счетов по бронированиям: числовой контракт (Invoice)
// и его PDF-представление
type Service struct {
	bookingsSvc BookingsService
	cfg         config.InvoiceConfig
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(bookingsSvc BookingsService, cfg config.InvoiceConfig, logger Logger) *Service {
	return &Service{
		bookingsSvc: bookingsSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

// Build собирает счет по бронированию. Суммы берутся из снимков строки
// бронирования; advance и balance_due - расчётные на момент вызова.
func (s *Service) Build(ctx context.Context, bookingID int64) (*Invoice, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	details, err := s.bookingsSvc.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Build: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	b := details.Booking
	return &Invoice{
		BookingNumber:     b.BookingNumber,
		IssuedAt:          time.Now(),
		CustomerName:      details.Customer.FullName,
		CustomerPhone:     details.Customer.Phone,
		CustomerEmail:     details.Customer.Email,
		CustomerAddress:   details.Customer.Address,
		HallName:          details.Hall.Name,
		EventDate:         b.EventDate,
		Shift:             b.Shift,
		EventType:         b.EventType,
		Guests:            b.NumberOfGuests,
		MenuLines:         b.Menus,
		ServiceLines:      b.Services,
		HallPrice:         b.HallPrice,
		MenuTotal:         b.MenuTotal,
		ServicesTotal:     b.ServicesTotal,
		Subtotal:          b.Subtotal,
		TaxAmount:         b.TaxAmount,
		GrandTotal:        b.GrandTotal,
		AdvancePercentage: details.AdvancePercentage,
		AdvanceAmount:     details.AdvanceAmount,
		AdvanceReceived:   b.AdvancePaymentReceived,
		VerifiedPaidSum:   details.VerifiedPaidSum,
		BalanceDue:        details.BalanceDue,
		Currency:          details.Currency,
		CurrencySymbol:    details.CurrencySymbol,
		BookingStatus:     b.BookingStatus,
		PaymentStatus:     b.PaymentStatus,
	}, nil
}

// RenderPDF рисует счет в PDF (A4). В правом верхнем углу - QR-код
// с номером бронирования для быстрого поиска на стойке.
func (s *Service) RenderPDF(inv *Invoice) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	if err := pdf.AddTTFFont(fontName, s.cfg.FontPath); err != nil {
		s.logger.Error("RenderPDF: failed to load font %s: %v", s.cfg.FontPath, err)
		return nil, fmt.Errorf("%w: failed to load font: %v", ErrRender, err)
	}

	if err := pdf.SetFont(fontName, "", 18); err != nil {
		return nil, fmt.Errorf("%w: failed to set font: %v", ErrRender, err)
	}
	pdf.SetX(pageLeft)
	pdf.SetY(36)
	pdf.Cell(nil, s.cfg.BusinessName)

	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return nil, fmt.Errorf("%w: failed to set font: %v", ErrRender, err)
	}
	pdf.SetX(pageLeft)
	pdf.SetY(64)
	pdf.Cell(nil, fmt.Sprintf("Invoice for booking %s, issued %s", inv.BookingNumber, inv.IssuedAt.Format(domain.DateFormat)))

	s.drawQR(pdf, inv.BookingNumber)

	pdf.SetY(100)
	s.drawLines(pdf, s.headerLines(inv))

	pdf.SetY(pdf.GetY() + lineHeight)
	s.drawLines(pdf, s.itemLines(inv))

	pdf.SetY(pdf.GetY() + lineHeight)
	s.drawLines(pdf, s.totalLines(inv))

	if s.cfg.FooterNote != "" {
		pdf.SetX(pageLeft)
		pdf.SetY(790)
		pdf.Cell(nil, s.cfg.FooterNote)
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		s.logger.Error("RenderPDF: failed to write pdf for booking %s: %v", inv.BookingNumber, err)
		return nil, fmt.Errorf("%w: failed to write pdf: %v", ErrRender, err)
	}

	return buf.Bytes(), nil
}

func (s *Service) drawQR(pdf *gopdf.GoPdf, bookingNumber string) {
	encoded, err := qrcode.Encode(bookingNumber, qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Warn("drawQR: failed to encode qr for %s: %v", bookingNumber, err)
		return
	}
	img, err := png.Decode(bytes.NewReader(encoded))
	if err != nil {
		s.logger.Warn("drawQR: failed to decode qr image: %v", err)
		return
	}
	if err := pdf.ImageFrom(img, 470, 30, &gopdf.Rect{W: 90, H: 90}); err != nil {
		s.logger.Warn("drawQR: failed to draw qr image: %v", err)
	}
}

func (s *Service) drawLines(pdf *gopdf.GoPdf, lines []string) {
	for _, line := range lines {
		pdf.SetX(pageLeft)
		pdf.Cell(nil, line)
		pdf.Br(lineHeight)
	}
}

func (s *Service) headerLines(inv *Invoice) []string {
	lines := []string{
		"Customer: " + inv.CustomerName,
		"Phone: " + inv.CustomerPhone,
	}
	if inv.CustomerEmail != nil {
		lines = append(lines, "Email: "+*inv.CustomerEmail)
	}
	if inv.CustomerAddress != nil {
		lines = append(lines, "Address: "+*inv.CustomerAddress)
	}
	lines = append(lines,
		fmt.Sprintf("Hall: %s, %s, %s shift", inv.HallName, inv.EventDate.Format(domain.DateFormat), inv.Shift),
		fmt.Sprintf("Event: %s, %d guests", inv.EventType, inv.Guests),
		fmt.Sprintf("Status: %s / payment %s", inv.BookingStatus, inv.PaymentStatus),
	)
	return lines
}

func (s *Service) itemLines(inv *Invoice) []string {
	sym := inv.CurrencySymbol
	lines := []string{fmt.Sprintf("Hall charge: %s %s", sym, inv.HallPrice.StringFixed(2))}
	for _, m := range inv.MenuLines {
		lines = append(lines, fmt.Sprintf("Menu %s: %s %s x %d = %s %s",
			m.MenuName, sym, m.PricePerPerson.StringFixed(2), m.NumberOfGuests, sym, m.TotalPrice.StringFixed(2)))
	}
	for _, sv := range inv.ServiceLines {
		lines = append(lines, fmt.Sprintf("Service %s: %s %s", sv.ServiceName, sym, sv.TotalPrice.StringFixed(2)))
	}
	return lines
}

func (s *Service) totalLines(inv *Invoice) []string {
	sym := inv.CurrencySymbol
	lines := []string{
		fmt.Sprintf("Subtotal: %s %s", sym, inv.Subtotal.StringFixed(2)),
		fmt.Sprintf("Tax: %s %s", sym, inv.TaxAmount.StringFixed(2)),
		fmt.Sprintf("Grand total: %s %s", sym, inv.GrandTotal.StringFixed(2)),
		fmt.Sprintf("Advance (%s%%): %s %s", inv.AdvancePercentage.StringFixed(0), sym, inv.AdvanceAmount.StringFixed(2)),
	}
	if inv.AdvanceReceived {
		lines = append(lines, "Advance received: yes")
	}
	lines = append(lines,
		fmt.Sprintf("Paid (verified): %s %s", sym, inv.VerifiedPaidSum.StringFixed(2)),
		fmt.Sprintf("Balance due: %s %s", sym, inv.BalanceDue.StringFixed(2)),
	)
	return lines
}
