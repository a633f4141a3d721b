package bookings_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-VenueService/internal/service/bookings"
)

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

func (m *MockBookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetMenuItems(ctx context.Context, bookingID int64) ([]domain.BookingMenu, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingMenu), args.Error(1)
}

func (m *MockBookingRepository) GetServiceItems(ctx context.Context, bookingID int64) ([]domain.BookingService, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingService), args.Error(1)
}

func (m *MockBookingRepository) DeleteMenuItems(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteServiceItems(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateAdvanceReceived(ctx context.Context, id int64, received bool) error {
	args := m.Called(ctx, id, received)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hall), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumVerifiedByBookingID(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendStatusChange(ctx context.Context, event *notifyservice.StatusChangeEvent) error {
	args := m.Called(ctx, event)
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
	bookings  *MockBookingRepository
	customers *MockCustomerRepository
	catalog   *MockCatalogRepository
	payments  *MockPaymentRepository
	settings  *MockSettingsRepository
	audit     *MockAuditRepository
	notifier  *MockNotifier
	svc       *bookings.Service
}

func newFixtures() *fixtures {
	f := &fixtures{
		bookings:  new(MockBookingRepository),
		customers: new(MockCustomerRepository),
		catalog:   new(MockCatalogRepository),
		payments:  new(MockPaymentRepository),
		settings:  new(MockSettingsRepository),
		audit:     new(MockAuditRepository),
		notifier:  new(MockNotifier),
	}
	f.svc = bookings.NewService(
		f.bookings, f.customers, f.catalog, f.payments,
		f.settings, f.audit, f.notifier, fakeTxManager{}, nopLogger{},
	)
	return f
}

func storedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            101,
		BookingNumber: "BK-20260301-0003",
		CustomerID:    55,
		HallID:        1,
		EventDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Shift:         domain.ShiftEvening,
		GrandTotal:    decimal.NewFromInt(12430),
		BookingStatus: domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestGetByID_BuildsFullDetails(t *testing.T) {
	f := newFixtures()
	booking := storedBooking()
	booking.AdvancePaymentReceived = true

	email := "ivan@example.com"
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(booking, nil)
	f.bookings.On("GetMenuItems", mock.Anything, int64(101)).Return([]domain.BookingMenu{
		{MenuID: 7, TotalPrice: decimal.NewFromInt(5000)},
	}, nil)
	f.bookings.On("GetServiceItems", mock.Anything, int64(101)).Return([]domain.BookingService{}, nil)
	f.customers.On("GetByID", mock.Anything, int64(55)).Return(&domain.Customer{ID: 55, FullName: "Иван Петров", Email: &email}, nil)
	f.catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{ID: 1, Name: "Большой зал"}, nil)
	f.payments.On("ListByBookingID", mock.Anything, int64(101)).Return([]*domain.Payment{
		{ID: 9, PaidAmount: decimal.NewFromInt(5000), Status: domain.PaymentRecordVerified},
	}, nil)
	f.payments.On("SumVerifiedByBookingID", mock.Anything, int64(101)).Return(decimal.NewFromInt(5000), nil)
	f.settings.On("Load", mock.Anything).Return(domain.Settings{
		TaxRate:           decimal.NewFromInt(13),
		AdvancePercentage: decimal.NewFromInt(30),
		Currency:          "NPR",
		CurrencySymbol:    "Rs.",
	}, nil)

	details, err := f.svc.GetByID(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, "Большой зал", details.Hall.Name)
	assert.Equal(t, "Иван Петров", details.Customer.FullName)
	assert.Len(t, details.Payments, 1)
	assert.True(t, details.VerifiedPaidSum.Equal(decimal.NewFromInt(5000)))
	// 12430 - 5000 verified - 3729 advance = 3701
	assert.True(t, details.AdvanceAmount.Equal(decimal.NewFromInt(3729)), "advance: %s", details.AdvanceAmount)
	assert.True(t, details.BalanceDue.Equal(decimal.NewFromInt(3701)), "balance due: %s", details.BalanceDue)
}

func TestDelete_CascadesAtomically(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.bookings.On("DeleteMenuItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("DeleteServiceItems", mock.Anything, int64(101)).Return(nil)
	f.payments.On("DeleteByBookingID", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("Delete", mock.Anything, int64(101)).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditActionDelete && e.RecordID == 101
	})).Return(nil)

	err := f.svc.Delete(context.Background(), 101, "user:1")
	require.NoError(t, err)

	f.bookings.AssertCalled(t, "DeleteMenuItems", mock.Anything, int64(101))
	f.bookings.AssertCalled(t, "DeleteServiceItems", mock.Anything, int64(101))
	f.payments.AssertCalled(t, "DeleteByBookingID", mock.Anything, int64(101))
	f.bookings.AssertCalled(t, "Delete", mock.Anything, int64(101))
	f.audit.AssertNumberOfCalls(t, "Insert", 1)
}

func TestDelete_PaymentFailureAbortsCascade(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.bookings.On("DeleteMenuItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("DeleteServiceItems", mock.Anything, int64(101)).Return(nil)
	f.payments.On("DeleteByBookingID", mock.Anything, int64(101)).Return(assert.AnError)

	err := f.svc.Delete(context.Background(), 101, "user:1")
	assert.ErrorIs(t, err, bookings.ErrInternal)

	// Ошибка внутри транзакции - само бронирование не трогается
	f.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.audit.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateStatus_NotifiesExactlyOnce(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)
	f.bookings.On("UpdateStatus", mock.Anything, int64(101), domain.StatusConfirmed).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.customers.On("GetByID", mock.Anything, int64(55)).Return(&domain.Customer{ID: 55, FullName: "Иван Петров", Phone: "+977981"}, nil)
	f.catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{ID: 1, Name: "Большой зал"}, nil)
	f.notifier.On("SendStatusChange", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.UpdateStatus(context.Background(), 101, domain.StatusConfirmed, "user:1")
	require.NoError(t, err)

	f.notifier.AssertNumberOfCalls(t, "SendStatusChange", 1)

	event := f.notifier.Calls[0].Arguments.Get(1).(*notifyservice.StatusChangeEvent)
	assert.Equal(t, "pending", event.OldBookingStatus)
	assert.Equal(t, "confirmed", event.NewBookingStatus)
	assert.Equal(t, "Большой зал", event.HallName)
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)

	err := f.svc.UpdateStatus(context.Background(), 101, domain.StatusPending, "user:1")
	require.NoError(t, err)

	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendStatusChange", mock.Anything, mock.Anything)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)

	err := f.svc.UpdateStatus(context.Background(), 101, domain.StatusCompleted, "user:1")
	assert.ErrorIs(t, err, bookings.ErrInvalidStatusTransition)
	f.notifier.AssertNotCalled(t, "SendStatusChange", mock.Anything, mock.Anything)
}

func TestUpdatePaymentStatus_BackwardFlowAudited(t *testing.T) {
	f := newFixtures()

	paid := storedBooking()
	paid.PaymentStatus = domain.PaymentPaid

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(paid, nil)
	f.bookings.On("UpdatePaymentStatus", mock.Anything, int64(101), domain.PaymentPartial).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Action == domain.AuditActionPaymentStatusChange
	})).Return(nil)
	f.customers.On("GetByID", mock.Anything, int64(55)).Return(&domain.Customer{ID: 55}, nil)
	f.catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{ID: 1, Name: "Большой зал"}, nil)
	f.notifier.On("SendStatusChange", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.UpdatePaymentStatus(context.Background(), 101, domain.PaymentPartial, "user:1")
	require.NoError(t, err)

	entry := f.audit.Calls[0].Arguments.Get(1).(domain.AuditEntry)
	assert.Contains(t, entry.Description, "(backward flow)")
}

func TestSetAdvanceReceived_NoOpWhenUnchanged(t *testing.T) {
	f := newFixtures()

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(storedBooking(), nil)

	err := f.svc.SetAdvanceReceived(context.Background(), 101, false, "user:1")
	require.NoError(t, err)

	f.bookings.AssertNotCalled(t, "UpdateAdvanceReceived", mock.Anything, mock.Anything, mock.Anything)
}

func TestList_RejectsUnknownStatusFilter(t *testing.T) {
	f := newFixtures()

	bad := domain.BookingStatus("garbage")
	_, err := f.svc.List(context.Background(), domain.BookingsFilter{BookingStatus: &bad})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)
}
