package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/catalog"
	customerRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// UseCase use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции с блокировкой конфликтующих строк - два конкурентных запроса
// на один слот получают ровно один успех и один ErrSlotNotAvailable
// (страховочный уровень - частичный уникальный индекс в БД).
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	customerRepo CustomerRepository
	auditRepo    AuditRepository
	pricingSvc   PricingService
	draftStore   DraftStore
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
	draftStore DraftStore,
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
		draftStore:   draftStore,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание бронирования.
// Бронирование, его позиции и запись аудита вставляются атомарно:
// при любой ошибке транзакция откатывается целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: hall=%d, date=%s, shift=%s, guests=%d, phone=%s",
		req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift, req.Guests, req.CustomerPhone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if err := validateDate(req.EventDate, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		quote    *pricing.Quote
		advance  *pricing.Advance
		hallName string
	)

	// 3. Все операции с БД в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Зал: существование, активность, вместимость
		hall, err := uc.catalogRepo.GetHall(txCtx, req.HallID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrHallNotFound) {
				uc.logger.Warn("CreateBooking: hall id=%d not found", req.HallID)
				return ErrHallNotFound
			}
			uc.logger.Error("CreateBooking: failed to get hall id=%d: %v", req.HallID, err)
			return fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
		}
		if !hall.IsActive() {
			uc.logger.Warn("CreateBooking: hall id=%d is inactive", req.HallID)
			return ErrHallInactive
		}
		if !hall.FitsGuests(req.Guests) {
			uc.logger.Warn("CreateBooking: guests=%d exceed capacity=%d of hall id=%d",
				req.Guests, hall.Capacity, req.HallID)
			return ErrCapacityExceeded
		}
		hallName = hall.Name

		// 3.2. Все выбранные меню привязаны к залу
		if len(req.MenuIDs) > 0 {
			assignedIDs, err := uc.catalogRepo.GetHallMenuIDs(txCtx, req.HallID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get hall menus for hall id=%d: %v", req.HallID, err)
				return fmt.Errorf("%w: failed to get hall menus: %v", ErrInternal, err)
			}
			if err := validateMenusAssigned(req.MenuIDs, assignedIDs); err != nil {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
		}

		// 3.3. Доступность слота (конфликтующие строки блокируются FOR UPDATE)
		taken, err := uc.bookingRepo.CountActiveBySlot(txCtx, req.HallID, req.EventDate, req.Shift, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot availability: %v", err)
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if taken > 0 {
			uc.logger.Warn("CreateBooking: slot taken, hall=%d date=%s shift=%s",
				req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift)
			return ErrSlotNotAvailable
		}

		// 3.4. Расчёт стоимости (настройки и цены читаются в этой же транзакции)
		quote, err = uc.pricingSvc.CalculateTotal(txCtx, req.HallID, req.MenuIDs, req.Guests, req.ServiceIDs)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrMenuNotFound):
				return fmt.Errorf("%w: %v", ErrMenuNotFound, err)
			case errors.Is(err, pricing.ErrServiceNotFound):
				return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
			}
			uc.logger.Error("CreateBooking: pricing failed: %v", err)
			return fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
		}

		advance, err = uc.pricingSvc.CalculateAdvance(txCtx, quote.GrandTotal)
		if err != nil {
			uc.logger.Error("CreateBooking: advance calculation failed: %v", err)
			return fmt.Errorf("%w: advance calculation failed: %v", ErrInternal, err)
		}

		// 3.5. Get-or-create заказчика по телефону
		cust, err := uc.upsertCustomer(txCtx, req)
		if err != nil {
			return err
		}

		// 3.6. Номер бронирования: max за день + 1
		maxSeq, err := uc.bookingRepo.MaxSequenceForDay(txCtx, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get max sequence: %v", err)
			return fmt.Errorf("%w: failed to generate booking number: %v", ErrInternal, err)
		}
		number := domain.FormatBookingNumber(uc.timeProvider.Now(), maxSeq+1)

		// 3.7. Вставка бронирования
		booking := &domain.Booking{
			BookingNumber:   number,
			CustomerID:      cust.ID,
			HallID:          req.HallID,
			EventDate:       req.EventDate,
			Shift:           req.Shift,
			EventType:       req.EventType,
			NumberOfGuests:  req.Guests,
			HallPrice:       quote.HallPrice,
			MenuTotal:       quote.MenuTotal,
			ServicesTotal:   quote.ServicesTotal,
			Subtotal:        quote.Subtotal,
			TaxAmount:       quote.TaxAmount,
			GrandTotal:      quote.GrandTotal,
			SpecialRequests: req.SpecialRequests,
			BookingStatus:   domain.StatusPending,
			PaymentStatus:   domain.PaymentPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Конкурент успел между проверкой и вставкой - индекс добил гонку
				uc.logger.Warn("CreateBooking: slot taken on insert (unique index), hall=%d date=%s shift=%s",
					req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.8. Позиции меню и услуг (snapshot цен из quote)
		menuItems := make([]domain.BookingMenu, len(quote.MenuLines))
		copy(menuItems, quote.MenuLines)
		for i := range menuItems {
			menuItems[i].BookingID = created.ID
		}
		if err := uc.bookingRepo.InsertMenuItems(txCtx, created.ID, menuItems); err != nil {
			uc.logger.Error("CreateBooking: failed to insert menu items: %v", err)
			return fmt.Errorf("%w: failed to insert menu items: %v", ErrInternal, err)
		}

		serviceItems := make([]domain.BookingService, len(quote.ServiceLines))
		copy(serviceItems, quote.ServiceLines)
		for i := range serviceItems {
			serviceItems[i].BookingID = created.ID
			serviceItems[i].AddedBy = req.AddedBy
		}
		if err := uc.bookingRepo.InsertServiceItems(txCtx, created.ID, serviceItems); err != nil {
			uc.logger.Error("CreateBooking: failed to insert service items: %v", err)
			return fmt.Errorf("%w: failed to insert service items: %v", ErrInternal, err)
		}

		created.Menus = menuItems
		created.Services = serviceItems

		// 3.9. Запись аудита в той же транзакции
		if err := uc.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       req.Actor,
			Action:      domain.AuditActionCreate,
			TableName:   "bookings",
			RecordID:    created.ID,
			Description: fmt.Sprintf("booking %s created: hall=%d, date=%s, shift=%s, grand_total=%s",
				number, req.HallID, req.EventDate.Format(domain.DateFormat), req.Shift, quote.GrandTotal.StringFixed(2)),
		}); err != nil {
			uc.logger.Error("CreateBooking: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s", result.ID, result.BookingNumber)

	// 4. Черновик визарда больше не нужен
	if req.DraftToken != nil {
		if err := uc.draftStore.Delete(ctx, *req.DraftToken); err != nil {
			uc.logger.Warn("CreateBooking: failed to delete draft token=%s: %v", *req.DraftToken, err)
		}
	}

	// 5. Уведомление о новом бронировании; недоставка не откатывает создание
	event := &notifyservice.StatusChangeEvent{
		BookingNumber:    result.BookingNumber,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		HallName:         hallName,
		EventDate:        result.EventDate.Format(domain.DateFormat),
		Shift:            string(result.Shift),
		NewBookingStatus: string(result.BookingStatus),
	}
	if req.CustomerEmail != nil {
		event.CustomerEmail = *req.CustomerEmail
	}
	if err := uc.notifier.SendStatusChange(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to send notification for booking=%s: %v", result.BookingNumber, err)
	}

	return toResponse(result, quote, advance), nil
}

// upsertCustomer ищет заказчика по телефону; найденному обновляет контакты,
// отсутствующего создает
func (uc *UseCase) upsertCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	cust, err := uc.customerRepo.GetByPhone(ctx, req.CustomerPhone)
	if err != nil {
		if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Error("CreateBooking: failed to lookup customer by phone: %v", err)
			return nil, fmt.Errorf("%w: failed to lookup customer: %v", ErrInternal, err)
		}

		created, err := uc.customerRepo.Create(ctx, &domain.Customer{
			FullName: req.CustomerName,
			Phone:    req.CustomerPhone,
			Email:    req.CustomerEmail,
			Address:  req.CustomerAddress,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create customer: %v", err)
			return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
		}
		return created, nil
	}

	cust.FullName = req.CustomerName
	cust.Email = req.CustomerEmail
	cust.Address = req.CustomerAddress
	if err := uc.customerRepo.Update(ctx, cust); err != nil {
		uc.logger.Error("CreateBooking: failed to update customer id=%d: %v", cust.ID, err)
		return nil, fmt.Errorf("%w: failed to update customer: %v", ErrInternal, err)
	}

	return cust, nil
}

func toResponse(b *domain.Booking, quote *pricing.Quote, advance *pricing.Advance) *Response {
	resp := &Response{
		ID:              b.ID,
		BookingNumber:   b.BookingNumber,
		CustomerID:      b.CustomerID,
		HallID:          b.HallID,
		EventDate:       b.EventDate,
		Shift:           b.Shift,
		EventType:       b.EventType,
		Guests:          b.NumberOfGuests,
		HallPrice:       b.HallPrice,
		MenuTotal:       b.MenuTotal,
		ServicesTotal:   b.ServicesTotal,
		Subtotal:        b.Subtotal,
		TaxAmount:       b.TaxAmount,
		GrandTotal:      b.GrandTotal,
		SpecialRequests: b.SpecialRequests,
		BookingStatus:   b.BookingStatus,
		PaymentStatus:   b.PaymentStatus,
		Menus:           b.Menus,
		Services:        b.Services,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
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
