package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/service/payments"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentRecordStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumVerifiedByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixtures struct {
	payments *MockPaymentRepository
	bookings *MockBookingRepository
	audit    *MockAuditRepository
	svc      *payments.Service
}

func newFixtures() *fixtures {
	f := &fixtures{
		payments: new(MockPaymentRepository),
		bookings: new(MockBookingRepository),
		audit:    new(MockAuditRepository),
	}
	f.svc = payments.NewService(f.payments, f.bookings, f.audit, fakeTxManager{}, nopLogger{})
	return f
}

func storedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            101,
		BookingNumber: "BK-20260301-0003",
		GrandTotal:    decimal.NewFromInt(12430),
		PaymentStatus: domain.PaymentPending,
	}
}

func pendingPayment() *domain.Payment {
	return &domain.Payment{
		ID:          9,
		BookingID:   101,
		PaidAmount:  decimal.NewFromInt(5000),
		Status:      domain.PaymentRecordPending,
		MethodName:  "bank_transfer",
		PaymentDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecord_CreatesPendingPayment(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Status == domain.PaymentRecordPending && p.BookingID == 101
	})).Return(pendingPayment(), nil)
	f.audit.On("Insert", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditActionPaymentRecorded && e.TableName == "payments"
	})).Return(nil)

	created, err := f.svc.Record(context.Background(), &payments.RecordRequest{
		BookingID:   101,
		PaidAmount:  decimal.NewFromInt(5000),
		MethodName:  "bank_transfer",
		PaymentDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Actor:       "user:1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	f.audit.AssertNumberOfCalls(t, "Insert", 1)
}

func TestRecord_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixtures()

	_, err := f.svc.Record(context.Background(), &payments.RecordRequest{
		BookingID:   101,
		PaidAmount:  decimal.Zero,
		MethodName:  "cash",
		PaymentDate: time.Now(),
	})
	assert.ErrorIs(t, err, payments.ErrInvalidInput)
}

func TestVerify_PartialCoverageSetsPartial(t *testing.T) {
	f := newFixtures()

	f.payments.On("GetByID", mock.Anything, int64(9)).Return(pendingPayment(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordVerified).Return(nil)
	f.payments.On("SumVerifiedByBookingID", mock.Anything, int64(101)).Return(decimal.NewFromInt(5000), nil)
	f.bookings.On("UpdatePaymentStatus", mock.Anything, int64(101), domain.PaymentPartial).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Verify(context.Background(), 9, "user:1")
	require.NoError(t, err)

	f.bookings.AssertCalled(t, "UpdatePaymentStatus", mock.Anything, int64(101), domain.PaymentPartial)
}

func TestVerify_FullCoverageSetsPaid(t *testing.T) {
	f := newFixtures()

	f.payments.On("GetByID", mock.Anything, int64(9)).Return(pendingPayment(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordVerified).Return(nil)
	f.payments.On("SumVerifiedByBookingID", mock.Anything, int64(101)).Return(decimal.NewFromInt(12430), nil)
	f.bookings.On("UpdatePaymentStatus", mock.Anything, int64(101), domain.PaymentPaid).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Verify(context.Background(), 9, "user:1")
	require.NoError(t, err)

	f.bookings.AssertCalled(t, "UpdatePaymentStatus", mock.Anything, int64(101), domain.PaymentPaid)
}

func TestReject_RecalcKeepsPendingWhenNothingVerified(t *testing.T) {
	f := newFixtures()

	f.payments.On("GetByID", mock.Anything, int64(9)).Return(pendingPayment(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordRejected).Return(nil)
	f.payments.On("SumVerifiedByBookingID", mock.Anything, int64(101)).Return(decimal.Zero, nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Reject(context.Background(), 9, "user:1")
	require.NoError(t, err)

	// Статус бронирования уже pending - обновление не нужно
	f.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_AlreadyProcessed(t *testing.T) {
	f := newFixtures()

	verified := pendingPayment()
	verified.Status = domain.PaymentRecordVerified
	f.payments.On("GetByID", mock.Anything, int64(9)).Return(verified, nil)

	err := f.svc.Verify(context.Background(), 9, "user:1")
	assert.ErrorIs(t, err, payments.ErrAlreadyProcessed)
	f.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_CancelledBookingStatusUntouched(t *testing.T) {
	f := newFixtures()

	cancelled := storedBooking()
	cancelled.PaymentStatus = domain.PaymentCancelled

	f.payments.On("GetByID", mock.Anything, int64(9)).Return(pendingPayment(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(cancelled, nil)
	f.payments.On("UpdateStatus", mock.Anything, int64(9), domain.PaymentRecordVerified).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Verify(context.Background(), 9, "user:1")
	require.NoError(t, err)

	f.payments.AssertNotCalled(t, "SumVerifiedByBookingID", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}
