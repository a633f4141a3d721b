package update_booking_test

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
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
	"github.com/m04kA/SMC-VenueService/internal/usecase/update_booking"
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

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) CountActiveBySlot(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (int, error) {
	args := m.Called(ctx, hallID, date, shift, excludeID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) DeleteMenuItems(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) DeleteServiceItems(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) InsertMenuItems(ctx context.Context, bookingID int64, items []domain.BookingMenu) error {
	args := m.Called(ctx, bookingID, items)
	return args.Error(0)
}

func (m *MockBookingRepository) InsertServiceItems(ctx context.Context, bookingID int64, items []domain.BookingService) error {
	args := m.Called(ctx, bookingID, items)
	return args.Error(0)
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

func (m *MockCatalogRepository) GetHallMenuIDs(ctx context.Context, hallID int64) ([]int64, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
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

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) CalculateTotal(ctx context.Context, hallID int64, menuIDs []int64, guests int, serviceIDs []int64) (*pricing.Quote, error) {
	args := m.Called(ctx, hallID, menuIDs, guests, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

func (m *MockPricingService) CalculateAdvance(ctx context.Context, grandTotal decimal.Decimal) (*pricing.Advance, error) {
	args := m.Called(ctx, grandTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Advance), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendStatusChange(ctx context.Context, event *notifyservice.StatusChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixtures struct {
	bookings  *MockBookingRepository
	catalog   *MockCatalogRepository
	customers *MockCustomerRepository
	audit     *MockAuditRepository
	pricing   *MockPricingService
	notifier  *MockNotifier
	uc        *update_booking.UseCase
}

func newFixtures() *fixtures {
	f := &fixtures{
		bookings:  new(MockBookingRepository),
		catalog:   new(MockCatalogRepository),
		customers: new(MockCustomerRepository),
		audit:     new(MockAuditRepository),
		pricing:   new(MockPricingService),
		notifier:  new(MockNotifier),
	}
	f.uc = update_booking.NewUseCase(
		f.bookings, f.catalog, f.customers, f.audit,
		f.pricing, f.notifier, fakeTxManager{}, nopLogger{},
	)
	return f
}

func existingBooking() *domain.Booking {
	return &domain.Booking{
		ID:             101,
		BookingNumber:  "BK-20260301-0003",
		CustomerID:     55,
		HallID:         1,
		EventDate:      time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Shift:          domain.ShiftEvening,
		EventType:      "wedding",
		NumberOfGuests: 10,
		GrandTotal:     decimal.NewFromInt(12430),
		BookingStatus:  domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
	}
}

func updateRequest() *update_booking.Request {
	return &update_booking.Request{
		BookingID:     101,
		CustomerName:  "Иван Петров",
		CustomerPhone: "+9779812345678",
		HallID:        1,
		EventDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Shift:         domain.ShiftEvening,
		EventType:     "wedding",
		Guests:        10,
		MenuIDs:       []int64{7},
		BookingStatus: domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		AddedBy:       domain.AddedByAdmin,
		Actor:         "user:1",
	}
}

func testQuote() *pricing.Quote {
	return &pricing.Quote{
		HallPrice:      decimal.NewFromInt(5000),
		MenuTotal:      decimal.NewFromInt(5000),
		ServicesTotal:  decimal.Zero,
		Subtotal:       decimal.NewFromInt(10000),
		TaxRate:        decimal.NewFromInt(13),
		TaxAmount:      decimal.NewFromInt(1300),
		GrandTotal:     decimal.NewFromInt(11300),
		Currency:       "NPR",
		CurrencySymbol: "Rs.",
		MenuLines: []domain.BookingMenu{
			{MenuID: 7, MenuName: "Стандартное меню", PricePerPerson: decimal.NewFromInt(500), NumberOfGuests: 10, TotalPrice: decimal.NewFromInt(5000)},
		},
	}
}

func activeHall() *domain.Hall {
	return &domain.Hall{
		ID:        1,
		Name:      "Большой зал",
		Capacity:  200,
		BasePrice: decimal.NewFromInt(5000),
		Status:    domain.EntityActive,
	}
}

func (f *fixtures) expectHappyPath(req *update_booking.Request) {
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(existingBooking(), nil)
	f.catalog.On("GetHall", mock.Anything, req.HallID).Return(activeHall(), nil)
	f.catalog.On("GetHallMenuIDs", mock.Anything, req.HallID).Return([]int64{7, 8}, nil)
	f.bookings.On("CountActiveBySlot", mock.Anything, req.HallID, req.EventDate, req.Shift, mock.Anything).Return(0, nil)
	f.pricing.On("CalculateTotal", mock.Anything, req.HallID, req.MenuIDs, req.Guests, req.ServiceIDs).Return(testQuote(), nil)
	f.pricing.On("CalculateAdvance", mock.Anything, mock.Anything).Return(&pricing.Advance{
		Percentage: decimal.NewFromInt(30),
		Amount:     decimal.NewFromInt(3390),
	}, nil)
	f.customers.On("GetByID", mock.Anything, int64(55)).Return(&domain.Customer{ID: 55}, nil)
	f.customers.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("DeleteMenuItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("DeleteServiceItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("InsertMenuItems", mock.Anything, int64(101), mock.Anything).Return(nil)
	f.bookings.On("InsertServiceItems", mock.Anything, int64(101), mock.Anything).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)
}

func TestExecute_RecomputesTotalsAndReplacesItems(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	f.expectHappyPath(req)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Суммы пересчитаны с нуля по актуальным ценам
	assert.True(t, resp.GrandTotal.Equal(decimal.NewFromInt(11300)), "grand total: %s", resp.GrandTotal)
	assert.True(t, resp.AdvanceAmount.Equal(decimal.NewFromInt(3390)))

	// Позиции заменены целиком: удаление, затем вставка
	f.bookings.AssertCalled(t, "DeleteMenuItems", mock.Anything, int64(101))
	f.bookings.AssertCalled(t, "DeleteServiceItems", mock.Anything, int64(101))
	f.bookings.AssertCalled(t, "InsertMenuItems", mock.Anything, int64(101), mock.Anything)

	// Статусы не менялись - уведомление не отправляется
	f.notifier.AssertNotCalled(t, "SendStatusChange", mock.Anything, mock.Anything)
}

func TestExecute_StatusChangeNotifiesExactlyOnce(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	req.BookingStatus = domain.StatusConfirmed
	req.PaymentStatus = domain.PaymentPartial
	f.expectHappyPath(req)
	f.notifier.On("SendStatusChange", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Изменились оба статуса, но уведомление ровно одно
	f.notifier.AssertNumberOfCalls(t, "SendStatusChange", 1)

	event := f.notifier.Calls[0].Arguments.Get(1).(*notifyservice.StatusChangeEvent)
	assert.Equal(t, string(domain.StatusPending), event.OldBookingStatus)
	assert.Equal(t, string(domain.StatusConfirmed), event.NewBookingStatus)
	assert.Equal(t, string(domain.PaymentPending), event.OldPaymentStatus)
	assert.Equal(t, string(domain.PaymentPartial), event.NewPaymentStatus)
}

func TestExecute_NotifyFailureDoesNotFailUpdate(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	req.BookingStatus = domain.StatusConfirmed
	f.expectHappyPath(req)
	f.notifier.On("SendStatusChange", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BookingNotEditable(t *testing.T) {
	f := newFixtures()
	req := updateRequest()

	done := existingBooking()
	done.BookingStatus = domain.StatusCompleted
	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(done, nil)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, update_booking.ErrBookingNotEditable)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_InvalidStatusTransition(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	req.BookingStatus = domain.StatusCompleted // pending -> completed запрещен

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(existingBooking(), nil)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, update_booking.ErrInvalidStatusTransition)
}

func TestExecute_SlotMovedOntoTakenSlot(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	req.EventDate = time.Now().AddDate(0, 2, 0)

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(existingBooking(), nil)
	f.catalog.On("GetHall", mock.Anything, req.HallID).Return(activeHall(), nil)
	f.catalog.On("GetHallMenuIDs", mock.Anything, req.HallID).Return([]int64{7}, nil)
	f.bookings.On("CountActiveBySlot", mock.Anything, req.HallID, req.EventDate, req.Shift, mock.MatchedBy(func(excludeID *int64) bool {
		return excludeID != nil && *excludeID == 101
	})).Return(1, nil)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, update_booking.ErrSlotNotAvailable)
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_SameSlotExcludesSelf(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	f.expectHappyPath(req)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Проверка доступности исключает само бронирование
	var sawExclude bool
	for _, call := range f.bookings.Calls {
		if call.Method != "CountActiveBySlot" {
			continue
		}
		if excludeID, ok := call.Arguments.Get(4).(*int64); ok && excludeID != nil && *excludeID == 101 {
			sawExclude = true
		}
	}
	assert.True(t, sawExclude, "CountActiveBySlot must exclude the booking itself")
}

func TestExecute_BackwardPaymentTransitionAudited(t *testing.T) {
	f := newFixtures()
	req := updateRequest()
	req.PaymentStatus = domain.PaymentPending

	paid := existingBooking()
	paid.PaymentStatus = domain.PaymentPaid

	f.bookings.On("GetByID", mock.Anything, int64(101)).Return(paid, nil)
	f.catalog.On("GetHall", mock.Anything, req.HallID).Return(activeHall(), nil)
	f.catalog.On("GetHallMenuIDs", mock.Anything, req.HallID).Return([]int64{7}, nil)
	f.bookings.On("CountActiveBySlot", mock.Anything, req.HallID, req.EventDate, req.Shift, mock.Anything).Return(0, nil)
	f.pricing.On("CalculateTotal", mock.Anything, req.HallID, req.MenuIDs, req.Guests, req.ServiceIDs).Return(testQuote(), nil)
	f.pricing.On("CalculateAdvance", mock.Anything, mock.Anything).Return(&pricing.Advance{
		Percentage: decimal.NewFromInt(30),
		Amount:     decimal.NewFromInt(3390),
	}, nil)
	f.customers.On("GetByID", mock.Anything, int64(55)).Return(&domain.Customer{ID: 55}, nil)
	f.customers.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.bookings.On("DeleteMenuItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("DeleteServiceItems", mock.Anything, int64(101)).Return(nil)
	f.bookings.On("InsertMenuItems", mock.Anything, int64(101), mock.Anything).Return(nil)
	f.bookings.On("InsertServiceItems", mock.Anything, int64(101), mock.Anything).Return(nil)
	f.audit.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("SendStatusChange", mock.Anything, mock.Anything).Return(nil)

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	var sawBackward bool
	for _, call := range f.audit.Calls {
		entry := call.Arguments.Get(1).(domain.AuditEntry)
		if entry.Action == domain.AuditActionPaymentStatusChange {
			assert.Contains(t, entry.Description, "(backward flow)")
			sawBackward = true
		}
	}
	assert.True(t, sawBackward, "backward payment transition must be audited")
}
