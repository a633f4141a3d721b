package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

// Service операции жизненного цикла бронирования: карточка, список,
// быстрые смены статусов, удаление. Создание и редактирование живут
// в соответствующих use case.
type Service struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	catalogRepo  CatalogRepository
	paymentRepo  PaymentRepository
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	notifier     Notifier
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	catalogRepo CatalogRepository,
	paymentRepo PaymentRepository,
	settingsRepo SettingsRepository,
	auditRepo AuditRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		catalogRepo:  catalogRepo,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID собирает полную карточку бронирования: позиции, заказчик, зал,
// платежи и расчётный остаток к оплате
func (s *Service) GetByID(ctx context.Context, id int64) (*Details, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return s.buildDetails(ctx, booking)
}

// GetByNumber собирает карточку бронирования по его номеру
func (s *Service) GetByNumber(ctx context.Context, number string) (*Details, error) {
	if !domain.ValidBookingNumber(number) {
		return nil, fmt.Errorf("%w: malformed booking number %q", ErrInvalidInput, number)
	}

	booking, err := s.bookingRepo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByNumber: failed to get booking number=%s: %v", number, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return s.buildDetails(ctx, booking)
}

func (s *Service) buildDetails(ctx context.Context, booking *domain.Booking) (*Details, error) {
	menus, err := s.bookingRepo.GetMenuItems(ctx, booking.ID)
	if err != nil {
		s.logger.Error("buildDetails: failed to get menu items for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get menu items: %v", ErrInternal, err)
	}
	booking.Menus = menus

	services, err := s.bookingRepo.GetServiceItems(ctx, booking.ID)
	if err != nil {
		s.logger.Error("buildDetails: failed to get service items for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to get service items: %v", ErrInternal, err)
	}
	booking.Services = services

	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		s.logger.Error("buildDetails: failed to get customer id=%d: %v", booking.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	hall, err := s.catalogRepo.GetHall(ctx, booking.HallID)
	if err != nil {
		s.logger.Error("buildDetails: failed to get hall id=%d: %v", booking.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	payments, err := s.paymentRepo.ListByBookingID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("buildDetails: failed to list payments for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
	}

	verifiedSum, err := s.paymentRepo.SumVerifiedByBookingID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("buildDetails: failed to sum verified payments for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to sum payments: %v", ErrInternal, err)
	}

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("buildDetails: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	advance := pricing.AdvanceFromSettings(settings, booking.GrandTotal)
	balanceDue := pricing.BalanceDue(booking.GrandTotal, verifiedSum, advance.Amount, booking.AdvancePaymentReceived)

	return &Details{
		Booking:           booking,
		Customer:          customer,
		Hall:              hall,
		Payments:          payments,
		VerifiedPaidSum:   verifiedSum,
		AdvancePercentage: advance.Percentage,
		AdvanceAmount:     advance.Amount,
		BalanceDue:        balanceDue,
		Currency:          settings.Currency,
		CurrencySymbol:    settings.CurrencySymbol,
	}, nil
}

// List возвращает бронирования по фильтру админки
func (s *Service) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if filter.BookingStatus != nil && !filter.BookingStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown bookingStatus %q", ErrInvalidInput, *filter.BookingStatus)
	}
	if filter.PaymentStatus != nil && !filter.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalidInput, *filter.PaymentStatus)
	}

	list, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	return list, nil
}

// Delete полностью удаляет бронирование и все его дочерние строки
// (позиции меню, услуги, платежи) в одной транзакции. Любая ошибка
// откатывает удаление целиком - частично удаленного состояния не бывает.
func (s *Service) Delete(ctx context.Context, id int64, actor string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: failed to get booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.DeleteMenuItems(txCtx, id); err != nil {
			s.logger.Error("Delete: failed to delete menu items for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete menu items: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.DeleteServiceItems(txCtx, id); err != nil {
			s.logger.Error("Delete: failed to delete service items for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete service items: %v", ErrInternal, err)
		}
		if err := s.paymentRepo.DeleteByBookingID(txCtx, id); err != nil {
			s.logger.Error("Delete: failed to delete payments for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete payments: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.Delete(txCtx, id); err != nil {
			s.logger.Error("Delete: failed to delete booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to delete booking: %v", ErrInternal, err)
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       actor,
			Action:      domain.AuditActionDelete,
			TableName:   "bookings",
			RecordID:    id,
			Description: fmt.Sprintf("booking %s deleted with all line items and payments", booking.BookingNumber),
		}); err != nil {
			s.logger.Error("Delete: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: booking id=%d deleted by %s", id, actor)
	return nil
}

// UpdateStatus быстрое обновление booking_status с проверкой перехода
// по whitelist. После коммита отправляется ровно одно уведомление.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus domain.BookingStatus, actor string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown bookingStatus %q", ErrInvalidInput, newStatus)
	}

	var (
		booking   *domain.Booking
		oldStatus domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: failed to get booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		oldStatus = booking.BookingStatus
		if oldStatus == newStatus {
			return nil
		}
		if !domain.CanTransition(oldStatus, newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d", oldStatus, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, oldStatus, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			s.logger.Error("UpdateStatus: failed to update status for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       actor,
			Action:      domain.AuditActionStatusChange,
			TableName:   "bookings",
			RecordID:    id,
			Description: fmt.Sprintf("booking %s status: %s -> %s", booking.BookingNumber, oldStatus, newStatus),
		}); err != nil {
			s.logger.Error("UpdateStatus: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if oldStatus == newStatus {
		return nil
	}

	s.logger.Info("UpdateStatus: booking id=%d status %s -> %s by %s", id, oldStatus, newStatus, actor)
	s.notifyStatusChange(ctx, booking, string(oldStatus), string(newStatus), "", "")
	return nil
}

// UpdatePaymentStatus быстрое обновление payment_status. Понижение статуса
// разрешено, но помечается в аудите как backward flow.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id int64, newStatus domain.PaymentStatus, actor string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if !newStatus.Valid() {
		return fmt.Errorf("%w: unknown paymentStatus %q", ErrInvalidInput, newStatus)
	}

	var (
		booking   *domain.Booking
		oldStatus domain.PaymentStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdatePaymentStatus: failed to get booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		oldStatus = booking.PaymentStatus
		if oldStatus == newStatus {
			return nil
		}

		if err := s.bookingRepo.UpdatePaymentStatus(txCtx, id, newStatus); err != nil {
			s.logger.Error("UpdatePaymentStatus: failed to update payment status for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}

		desc := fmt.Sprintf("booking %s payment status: %s -> %s", booking.BookingNumber, oldStatus, newStatus)
		if domain.IsBackwardPaymentTransition(oldStatus, newStatus) {
			s.logger.Warn("UpdatePaymentStatus: backward payment transition %s -> %s for booking id=%d", oldStatus, newStatus, id)
			desc += " (backward flow)"
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       actor,
			Action:      domain.AuditActionPaymentStatusChange,
			TableName:   "bookings",
			RecordID:    id,
			Description: desc,
		}); err != nil {
			s.logger.Error("UpdatePaymentStatus: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if oldStatus == newStatus {
		return nil
	}

	s.logger.Info("UpdatePaymentStatus: booking id=%d payment status %s -> %s by %s", id, oldStatus, newStatus, actor)
	s.notifyStatusChange(ctx, booking, "", "", string(oldStatus), string(newStatus))
	return nil
}

// SetAdvanceReceived переключает флаг получения предоплаты
func (s *Service) SetAdvanceReceived(ctx context.Context, id int64, received bool, actor string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("SetAdvanceReceived: failed to get booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		if booking.AdvancePaymentReceived == received {
			return nil
		}

		if err := s.bookingRepo.UpdateAdvanceReceived(txCtx, id, received); err != nil {
			s.logger.Error("SetAdvanceReceived: failed to update flag for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to update advance flag: %v", ErrInternal, err)
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       actor,
			Action:      domain.AuditActionUpdate,
			TableName:   "bookings",
			RecordID:    id,
			Description: fmt.Sprintf("booking %s advance_payment_received set to %t", booking.BookingNumber, received),
		}); err != nil {
			s.logger.Error("SetAdvanceReceived: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		return nil
	})
}

// notifyStatusChange отправляет уведомление о смене статуса; недоставка
// логируется и не влияет на результат операции
func (s *Service) notifyStatusChange(ctx context.Context, booking *domain.Booking, oldBooking, newBooking, oldPayment, newPayment string) {
	event := &notifyservice.StatusChangeEvent{
		BookingNumber:    booking.BookingNumber,
		EventDate:        booking.EventDate.Format(domain.DateFormat),
		Shift:            string(booking.Shift),
		OldBookingStatus: oldBooking,
		NewBookingStatus: newBooking,
		OldPaymentStatus: oldPayment,
		NewPaymentStatus: newPayment,
	}

	if customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID); err == nil {
		event.CustomerName = customer.FullName
		event.CustomerPhone = customer.Phone
		if customer.Email != nil {
			event.CustomerEmail = *customer.Email
		}
	} else {
		s.logger.Warn("notifyStatusChange: failed to get customer id=%d: %v", booking.CustomerID, err)
	}

	if hall, err := s.catalogRepo.GetHall(ctx, booking.HallID); err == nil {
		event.HallName = hall.Name
	}

	if err := s.notifier.SendStatusChange(ctx, event); err != nil {
		s.logger.Error("notifyStatusChange: failed to send notification for booking=%s: %v", booking.BookingNumber, err)
	}
}
