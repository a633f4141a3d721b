package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/payment"
)

// Service учет платежей по бронированиям. Платеж регистрируется со статусом
// pending и влияет на payment_status бронирования только после верификации
// оператором.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	auditRepo   AuditRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// RecordRequest входные данные регистрации платежа
type RecordRequest struct {
	BookingID     int64
	PaidAmount    decimal.Decimal
	MethodName    string
	TransactionID *string
	PaymentDate   time.Time
	SlipFile      *string
	Actor         string
}

// Record регистрирует платеж по бронированию со статусом pending
func (s *Service) Record(ctx context.Context, req *RecordRequest) (*domain.Payment, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if !req.PaidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: paidAmount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.MethodName) == "" {
		return nil, fmt.Errorf("%w: methodName is required", ErrInvalidInput)
	}
	if req.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: paymentDate is required", ErrInvalidInput)
	}

	var created *domain.Payment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Record: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		created, err = s.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:     req.BookingID,
			PaidAmount:    req.PaidAmount,
			Status:        domain.PaymentRecordPending,
			MethodName:    req.MethodName,
			TransactionID: req.TransactionID,
			PaymentDate:   req.PaymentDate,
			SlipFile:      req.SlipFile,
		})
		if err != nil {
			s.logger.Error("Record: failed to create payment for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       req.Actor,
			Action:      domain.AuditActionPaymentRecorded,
			TableName:   "payments",
			RecordID:    created.ID,
			Description: fmt.Sprintf("payment of %s recorded for booking %s via %s", req.PaidAmount.StringFixed(2), booking.BookingNumber, req.MethodName),
		}); err != nil {
			s.logger.Error("Record: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Record: payment id=%d recorded for booking id=%d", created.ID, req.BookingID)
	return created, nil
}

// Verify подтверждает платеж и пересчитывает payment_status бронирования
// от суммы всех подтвержденных платежей: paid при покрытии grand_total,
// иначе partial
func (s *Service) Verify(ctx context.Context, paymentID int64, actor string) error {
	return s.process(ctx, paymentID, domain.PaymentRecordVerified, domain.AuditActionPaymentVerified, actor)
}

// Reject отклоняет платеж; payment_status бронирования пересчитывается,
// так как отклоненный ранее мог быть pending и не влиял на сумму
func (s *Service) Reject(ctx context.Context, paymentID int64, actor string) error {
	return s.process(ctx, paymentID, domain.PaymentRecordRejected, domain.AuditActionPaymentRejected, actor)
}

func (s *Service) process(ctx context.Context, paymentID int64, newStatus domain.PaymentRecordStatus, auditAction string, actor string) error {
	if paymentID <= 0 {
		return fmt.Errorf("%w: paymentId must be positive", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.GetByID(txCtx, paymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			s.logger.Error("process: failed to get payment id=%d: %v", paymentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}
		if payment.Status != domain.PaymentRecordPending {
			s.logger.Warn("process: payment id=%d already processed with status %s", paymentID, payment.Status)
			return fmt.Errorf("%w: status is %s", ErrAlreadyProcessed, payment.Status)
		}

		booking, err := s.bookingRepo.GetByID(txCtx, payment.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("process: failed to get booking id=%d: %v", payment.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if err := s.paymentRepo.UpdateStatus(txCtx, paymentID, newStatus); err != nil {
			s.logger.Error("process: failed to update payment id=%d status: %v", paymentID, err)
			return fmt.Errorf("%w: failed to update payment status: %v", ErrInternal, err)
		}

		if err := s.recalcBookingPaymentStatus(txCtx, booking); err != nil {
			return err
		}

		if err := s.auditRepo.Insert(txCtx, domain.AuditEntry{
			Actor:       actor,
			Action:      auditAction,
			TableName:   "payments",
			RecordID:    paymentID,
			Description: fmt.Sprintf("payment of %s for booking %s marked %s", payment.PaidAmount.StringFixed(2), booking.BookingNumber, newStatus),
		}); err != nil {
			s.logger.Error("process: failed to write audit entry: %v", err)
			return fmt.Errorf("%w: failed to write audit entry: %v", ErrInternal, err)
		}

		s.logger.Info("process: payment id=%d marked %s by %s", paymentID, newStatus, actor)
		return nil
	})
}

// recalcBookingPaymentStatus выводит payment_status бронирования из суммы
// подтвержденных платежей. Статус cancelled не трогаем - он выставляется
// только оператором.
func (s *Service) recalcBookingPaymentStatus(ctx context.Context, booking *domain.Booking) error {
	if booking.PaymentStatus == domain.PaymentCancelled {
		return nil
	}

	verifiedSum, err := s.paymentRepo.SumVerifiedByBookingID(ctx, booking.ID)
	if err != nil {
		s.logger.Error("recalcBookingPaymentStatus: failed to sum verified payments for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to sum payments: %v", ErrInternal, err)
	}

	newStatus := domain.PaymentPending
	switch {
	case verifiedSum.GreaterThanOrEqual(booking.GrandTotal) && booking.GrandTotal.IsPositive():
		newStatus = domain.PaymentPaid
	case verifiedSum.IsPositive():
		newStatus = domain.PaymentPartial
	}

	if newStatus == booking.PaymentStatus {
		return nil
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, newStatus); err != nil {
		s.logger.Error("recalcBookingPaymentStatus: failed to update booking id=%d payment status: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to update booking payment status: %v", ErrInternal, err)
	}

	s.logger.Info("recalcBookingPaymentStatus: booking id=%d payment status %s -> %s (verified sum %s)",
		booking.ID, booking.PaymentStatus, newStatus, verifiedSum.StringFixed(2))
	return nil
}

// ListByBooking возвращает все платежи бронирования
func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	list, err := s.paymentRepo.ListByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListByBooking: failed to list payments for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
	}

	return list, nil
}
