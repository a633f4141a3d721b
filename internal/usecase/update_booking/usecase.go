package update_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// UseCase use case редактирования бронирования.
// Суммы пересчитываются с нуля по актуальным ценам, позиции заменяются
// целиком, доступность слота перепроверяется с исключением самого
// бронирования. Все изменения атомарны.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	customerRepo CustomerRepository
	auditRepo    AuditRepository
	pricingSvc   PricingService
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	auditRepo AuditRepository,
	pricingSvc PricingService,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		pricingSvc:   pricingSvc,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет редактирование бронирования.
// Если изменился booking_status или payment_status, после коммита
// отправляется ровно одно уведомление о смене статуса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: id=%d, hall=%d, date=%s, shift=%s",
		req.BookingID, req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result        *domain.Booking
		quote         *pricing.Quote
		advance       *pricing.Advance
		hallName      string
		oldBooking    domain.BookingStatus
		oldPayment    domain.PaymentStatus
		statusChanged bool
	)

	// 2. Все операции с БД в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if !existing.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d has terminal status %s", req.BookingID, existing.BookingStatus)
			return ErrBookingNotEditable
		}

		oldBooking = existing.BookingStatus
		oldPayment = existing.PaymentStatus

		// 2.1. Переход booking_status по whitelist
		if !domain.CanTransition(existing.BookingStatus, req.BookingStatus) {
			uc.logger.Warn("UpdateBooking: transition %s -> %s is not allowed for booking id=%d",
				existing.BookingStatus, req.BookingStatus, req.BookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, existing.BookingStatus, req.BookingStatus)
		}

		// 2.2. Зал: существование, активность, вместимость
		hall, err := uc.catalogRepo.GetHall(txCtx, req.HallID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrHallNotFound) {
				uc.logger.Warn("UpdateBooking: hall id=%d not found", req.HallID)
				return ErrHallNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get hall id=%d: %v", req.HallID, err)
			return fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
		}
		if !hall.IsActive() {
			uc.logger.Warn("UpdateBooking: hall id=%d is inactive", req.HallID)
			return ErrHallInactive
		}
		if !hall.FitsGuests(req.Guests) {
			uc.logger.Warn("UpdateBooking: guests=%d exceed capacity=%d of hall id=%d",
				req.Guests, hall.Capacity, req.HallID)
			return ErrCapacityExceeded
		}
		hallName = hall.Name

		// 2.3. При переносе слота - дата не в прошлом
		slotMoved := existing.HallID != req.HallID ||
			!sameDay(existing.EventDate, req.EventDate) ||
			existing.Shift != req.Shift
		if slotMoved {
			if err := validateDate(req.EventDate, uc.timeProvider.Now()); err != nil {
				uc.logger.Warn("UpdateBooking: date validation failed: %v", err)
				return err
			}
		}

		// 2.4. Все выбранные меню привязаны к залу
		if len(req.MenuIDs) > 0 {
			assignedIDs, err := uc.catalogRepo.GetHallMenuIDs(txCtx, req.HallID)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to get hall menus for hall id=%d: %v", req.HallID, err)
				return fmt.Errorf("%w: failed to get hall menus: %v", ErrInternal, err)
			}
			if err := validateMenusAssigned(req.MenuIDs, assignedIDs); err != nil {
				uc.logger.Warn("UpdateBooking: %v", err)
				return err
			}
		}

		// 2.5. Доступность слота без учета самого бронирования
		taken, err := uc.bookingRepo.CountActiveBySlot(txCtx, req.HallID, req.EventDate, req.Shift, &existing.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if taken > 0 {
			uc.logger.Warn("UpdateBooking: slot taken, hall=%d date=%s shift=%s",
				req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift)
			return ErrSlotNotAvailable
		}

		// 2.6. Пересчёт стоимости с нуля по актуальным ценам
		quote, err = uc.pricingSvc.CalculateTotal(txCtx, req.HallID, req.MenuIDs, req.Guests, req.ServiceIDs)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrMenuNotFound):
				return fmt.Errorf("%w: %v", ErrMenuNotFound, err)
			case errors.Is(err, pricing.ErrServiceNotFound):
				return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
			}
			uc.logger.Error("UpdateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}

		advance, err = uc.pricingSvc.CalculateAdvance(txCtx, quote.GrandTotal)
		if err != nil {
			uc.logger.Error("UpdateBooking: advance calculation failed: %v", err)
			return fmt.Errorf("%w: advance calculation failed: %v", ErrInternal, err)
		}

		// 2.7. Обновление контактов заказчика
		cust, err := uc.customerRepo.GetByID(txCtx, existing.CustomerID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get customer id=%d: %v", existing.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		cust.FullName = req.CustomerName
		cust.Phone = req.CustomerPhone
		cust.Email = req.CustomerEmail
		cust.Address = req.CustomerAddress
		if err := uc.customerRepo.Update(txCtx, cust); err != nil {
			uc.logger.Error("UpdateBooking: failed to update customer id=%d: %v", cust.ID, err)
			return fmt.Errorf("%w: failed to update customer: %v", ErrInternal, err)
		}

		// 2.8. Обратный переход payment_status разрешен, но фиксируется
		backwardPayment := domain.IsBackwardPaymentTransition(existing.PaymentStatus, req.PaymentStatus)
		if backwardPayment {
			uc.logger.Warn("UpdateBooking: backward payment transition %s -> %s for booking id=%d",
				existing.PaymentStatus, req.PaymentStatus, req.BookingID)
		}

		// 2.9. Обновление строки бронирования
		existing.HallID = req.HallID
		existing.EventDate = req.EventDate
		existing.Shift = req.Shift
		existing.EventType = req.EventType
		existing.NumberOfGuests = req.Guests
		existing.HallPrice = quote.HallPrice
		existing.MenuTotal = quote.MenuTotal
		existing.ServicesTotal = quote.ServicesTotal
		existing.Subtotal = quote.Subtotal
		existing.TaxAmount = quote.TaxAmount
		existing.GrandTotal = quote.GrandTotal
		existing.SpecialRequests = req.SpecialRequests
		existing.BookingStatus = req.BookingStatus
		existing.PaymentStatus = req.PaymentStatus
		existing.AdvancePaymentReceived = req.AdvancePaymentReceived

		if err := uc.bookingRepo.Update(txCtx, existing); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("UpdateBooking: slot taken on update (unique index), hall=%d date=%s shift=%s",
					req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 2.10. Полная замена позиций: delete-then-reinsert
		if err := uc.bookingRepo.DeleteMenuItems(txCtx, existing.ID); err != nil {
			uc.logger.Error("UpdateBooking: failed to delete menu items: %v", err)
			return fmt.Errorf("%w: failed to delete menu items: %v", ErrInternal, err)
		}
		if err := uc.bookingRepo.DeleteServiceItems(txCtx, existing.ID); err != nil {
			uc.logger.Error("UpdateBooking: failed to delete service items: %v", err)
			return fmt.Errorf("%w: failed to delete service items: %v", ErrInternal, err)
		}

		menuItems := make([]domain.BookingMenu, len(quote.MenuLines))
		copy(menuItems, quote.MenuLines)
		for i := range menuItems {
			menuItems[i].BookingID = existing.ID
		}
		if err := uc.bookingRepo.InsertMenuItems(txCtx, existing.ID, menuItems); err != nil {
			uc.logger.Error("UpdateBooking: failed to insert menu items: %v", err)
			return fmt.Errorf("%w: failed to insert menu items: %v", ErrInternal, err)
		}

		serviceItems := make([]domain.BookingService, len(quote.ServiceLines))
		copy(serviceItems, quote.ServiceLines)
		for i := range serviceItems {
			serviceItems[i].BookingID = existing.ID
			serviceItems[i].AddedBy = req.AddedBy
		}
		if err := uc.bookingRepo.InsertServiceItems(txCtx, existing.ID, serviceItems); err != nil {
			uc.logger.Error("UpdateBooking: failed to insert service items: %v", err)
			return fmt.Errorf("%w: failed to insert service items: %v", ErrInternal, err)
		}

		existing.Menus = menuItems
		existing.Services = serviceItems

		// 2.11. Записи аудита
		if err := uc.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       req.Actor,
			Action:      domain.AuditActionUpdate,
			TableName:   "bookings",
			RecordID:    existing.ID,
			Description: fmt.Sprintf("booking %s updated: hall=%d, date=%s, shift=%s, grand_total=%s",
				existing.BookingNumber, req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift, quote.GrandTotal.StringFixed(2)),
		}); err != nil {
			uc.logger.Error("UpdateBooking: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		if oldBooking != req.BookingStatus {
			if err := uc.auditRepo.Insert(txCtx, domain.AuditEntry{
				Actor:       req.Actor,
				Action:      domain.AuditActionStatusChange,
				TableName:   "bookings",
				RecordID:    existing.ID,
				Description: fmt.Sprintf("booking %s status: %s -> %s", existing.BookingNumber, oldBooking, req.BookingStatus),
			}); err != nil {
				uc.logger.Error("UpdateBooking: failed to write status audit entry: %v", err)
				return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
			}
		}
		if oldPayment != req.PaymentStatus {
			desc := fmt.Sprintf("booking %s payment status: %s -> %s", existing.BookingNumber, oldPayment, req.PaymentStatus)
			if backwardPayment {
				desc += " (backward flow)"
			}
			if err := uc.auditRepo.Insert(txCtx, domain.AuditEntry{
				Actor:       req.Actor,
				Action:      domain.AuditActionPaymentStatusChange,
				TableName:   "bookings",
				RecordID:    existing.ID,
				Description: desc,
			}); err != nil {
				uc.logger.Error("UpdateBooking: failed to write payment status audit entry: %v", err)
				return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
			}
		}

		statusChanged = oldBooking != req.BookingStatus || oldPayment != req.PaymentStatus
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d number=%s", result.ID, result.BookingNumber)

	// 3. Ровно одно уведомление, только если статус действительно изменился
	if statusChanged {
		event := &notifyservice.StatusChangeEvent{
			BookingNumber:    result.BookingNumber,
			CustomerName:     req.CustomerName,
			CustomerPhone:    req.CustomerPhone,
			HallName:         hallName,
			EventDate:        result.EventDate.Format(domain.DateFormat),
			Shift:            string(result.Shift),
			OldBookingStatus: string(oldBooking),
			NewBookingStatus: string(result.BookingStatus),
			OldPaymentStatus: string(oldPayment),
			NewPaymentStatus: string(result.PaymentStatus),
		}
		if req.CustomerEmail != nil {
			event.CustomerEmail = *req.CustomerEmail
		}
		if err := uc.notifier.SendStatusChange(ctx, event); err != nil {
			uc.logger.Error("UpdateBooking: failed to send notification for booking=%s: %v", result.BookingNumber, err)
		}
	}

	return toResponse(result, quote, advance), nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func toResponse(b *domain.Booking, quote *pricing.Quote, advance *pricing.Advance) *Response {
	resp := &Response{
		ID:                     b.ID,
		BookingNumber:          b.BookingNumber,
		CustomerID:             b.CustomerID,
		HallID:                 b.HallID,
		EventDate:              b.EventDate,
		Shift:                  b.Shift,
		EventType:              b.EventType,
		Guests:                 b.NumberOfGuests,
		HallPrice:              b.HallPrice,
		MenuTotal:              b.MenuTotal,
		ServicesTotal:          b.ServicesTotal,
		Subtotal:               b.Subtotal,
		TaxAmount:              b.TaxAmount,
		GrandTotal:             b.GrandTotal,
		SpecialRequests:        b.SpecialRequests,
		BookingStatus:          b.BookingStatus,
		PaymentStatus:          b.PaymentStatus,
		AdvancePaymentReceived: b.AdvancePaymentReceived,
		Menus:                  b.Menus,
		Services:               b.Services,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
	if quote != nil {
		resp.TaxRate = quote.TaxRate
		resp.Currency = quote.Currency
		resp.CurrencySymbol = quote.CurrencySymbol
	}
	if advance != nil {
		resp.AdvancePercentage = advance.Percentage
		resp.AdvanceAmount = advance.Amount
	}
	return resp
}
