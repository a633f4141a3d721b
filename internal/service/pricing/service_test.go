package pricing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-VenueService/internal/service/pricing"
)

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

func (m *MockCatalogRepository) GetMenusByIDs(ctx context.Context, ids []int64) ([]*domain.Menu, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Menu), args.Error(1)
}

func (m *MockCatalogRepository) GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.AdditionalService, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdditionalService), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testSettings() domain.Settings {
	return domain.Settings{
		TaxRate:           decimal.NewFromInt(13),
		AdvancePercentage: decimal.NewFromInt(30),
		Currency:          "NPR",
		CurrencySymbol:    "Rs.",
	}
}

func TestCalculateTotal_FullBreakdown(t *testing.T) {
	catalog := new(MockCatalogRepository)
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(catalog, settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)
	catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{
		ID:        1,
		Name:      "Большой зал",
		Capacity:  200,
		BasePrice: decimal.NewFromInt(5000),
	}, nil)
	catalog.On("GetMenusByIDs", mock.Anything, []int64{7}).Return([]*domain.Menu{
		{ID: 7, Name: "Стандартное меню", PricePerPerson: decimal.NewFromInt(500)},
	}, nil)
	catalog.On("GetServicesByIDs", mock.Anything, []int64{3}).Return([]*domain.AdditionalService{
		{ID: 3, Name: "Оформление", Price: decimal.NewFromInt(1000)},
	}, nil)

	quote, err := svc.CalculateTotal(context.Background(), 1, []int64{7}, 10, []int64{3})
	require.NoError(t, err)

	assert.True(t, quote.HallPrice.Equal(decimal.NewFromInt(5000)), "hall price: %s", quote.HallPrice)
	assert.True(t, quote.MenuTotal.Equal(decimal.NewFromInt(5000)), "menu total: %s", quote.MenuTotal)
	assert.True(t, quote.ServicesTotal.Equal(decimal.NewFromInt(1000)), "services total: %s", quote.ServicesTotal)
	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(11000)), "subtotal: %s", quote.Subtotal)
	assert.True(t, quote.TaxAmount.Equal(decimal.NewFromInt(1430)), "tax amount: %s", quote.TaxAmount)
	assert.True(t, quote.GrandTotal.Equal(decimal.NewFromInt(12430)), "grand total: %s", quote.GrandTotal)
	assert.Equal(t, "NPR", quote.Currency)

	require.Len(t, quote.MenuLines, 1)
	assert.Equal(t, 10, quote.MenuLines[0].NumberOfGuests)
	assert.True(t, quote.MenuLines[0].TotalPrice.Equal(decimal.NewFromInt(5000)))
	require.Len(t, quote.ServiceLines, 1)
	assert.True(t, quote.ServiceLines[0].TotalPrice.Equal(decimal.NewFromInt(1000)))
}

func TestCalculateTotal_Idempotent(t *testing.T) {
	catalog := new(MockCatalogRepository)
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(catalog, settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)
	catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{
		ID: 1, BasePrice: decimal.NewFromInt(5000),
	}, nil)
	catalog.On("GetMenusByIDs", mock.Anything, mock.Anything).Return([]*domain.Menu{}, nil)
	catalog.On("GetServicesByIDs", mock.Anything, mock.Anything).Return([]*domain.AdditionalService{}, nil)

	first, err := svc.CalculateTotal(context.Background(), 1, nil, 50, nil)
	require.NoError(t, err)
	second, err := svc.CalculateTotal(context.Background(), 1, nil, 50, nil)
	require.NoError(t, err)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestCalculateTotal_DuplicateMenusChargedTwice(t *testing.T) {
	catalog := new(MockCatalogRepository)
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(catalog, settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)
	catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{
		ID: 1, BasePrice: decimal.Zero,
	}, nil)
	// Репозиторий возвращает строку на каждое вхождение ID
	catalog.On("GetMenusByIDs", mock.Anything, []int64{7, 7}).Return([]*domain.Menu{
		{ID: 7, PricePerPerson: decimal.NewFromInt(500)},
		{ID: 7, PricePerPerson: decimal.NewFromInt(500)},
	}, nil)
	catalog.On("GetServicesByIDs", mock.Anything, mock.Anything).Return([]*domain.AdditionalService{}, nil)

	quote, err := svc.CalculateTotal(context.Background(), 1, []int64{7, 7}, 10, nil)
	require.NoError(t, err)

	assert.True(t, quote.MenuTotal.Equal(decimal.NewFromInt(10000)), "menu total: %s", quote.MenuTotal)
	assert.Len(t, quote.MenuLines, 2)
}

func TestCalculateTotal_HallNotFoundUsesZeroPrice(t *testing.T) {
	catalog := new(MockCatalogRepository)
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(catalog, settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)
	catalog.On("GetHall", mock.Anything, int64(99)).Return(nil, catalogRepo.ErrHallNotFound)
	catalog.On("GetMenusByIDs", mock.Anything, mock.Anything).Return([]*domain.Menu{}, nil)
	catalog.On("GetServicesByIDs", mock.Anything, mock.Anything).Return([]*domain.AdditionalService{}, nil)

	quote, err := svc.CalculateTotal(context.Background(), 99, nil, 10, nil)
	require.NoError(t, err)

	assert.True(t, quote.HallPrice.IsZero())
	assert.True(t, quote.GrandTotal.IsZero())
}

func TestCalculateTotal_UnknownMenu(t *testing.T) {
	catalog := new(MockCatalogRepository)
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(catalog, settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)
	catalog.On("GetHall", mock.Anything, int64(1)).Return(&domain.Hall{
		ID: 1, BasePrice: decimal.NewFromInt(5000),
	}, nil)
	catalog.On("GetMenusByIDs", mock.Anything, []int64{404}).Return(nil, catalogRepo.ErrMenuNotFound)

	_, err := svc.CalculateTotal(context.Background(), 1, []int64{404}, 10, nil)
	assert.ErrorIs(t, err, pricing.ErrMenuNotFound)
}

func TestCalculateTotal_NegativeGuests(t *testing.T) {
	svc := pricing.NewService(new(MockCatalogRepository), new(MockSettingsRepository), nopLogger{})

	_, err := svc.CalculateTotal(context.Background(), 1, nil, -1, nil)
	assert.ErrorIs(t, err, pricing.ErrInvalidInput)
}

func TestCalculateAdvance(t *testing.T) {
	settings := new(MockSettingsRepository)
	svc := pricing.NewService(new(MockCatalogRepository), settings, nopLogger{})

	settings.On("Load", mock.Anything).Return(testSettings(), nil)

	advance, err := svc.CalculateAdvance(context.Background(), decimal.NewFromInt(12430))
	require.NoError(t, err)

	assert.True(t, advance.Percentage.Equal(decimal.NewFromInt(30)))
	assert.True(t, advance.Amount.Equal(decimal.NewFromInt(3729)), "advance: %s", advance.Amount)
}

func TestBalanceDue(t *testing.T) {
	grand := decimal.NewFromInt(12430)
	advance := decimal.NewFromInt(3729)

	tests := []struct {
		name            string
		verifiedSum     decimal.Decimal
		advanceReceived bool
		want            decimal.Decimal
	}{
		{"nothing paid", decimal.Zero, false, decimal.NewFromInt(12430)},
		{"advance received", decimal.Zero, true, decimal.NewFromInt(8701)},
		{"partial payment", decimal.NewFromInt(5000), false, decimal.NewFromInt(7430)},
		{"payment and advance", decimal.NewFromInt(5000), true, decimal.NewFromInt(3701)},
		{"overpayment clamps to zero", decimal.NewFromInt(13000), true, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.BalanceDue(grand, tt.verifiedSum, advance, tt.advanceReceived)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
