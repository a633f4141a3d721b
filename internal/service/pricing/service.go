package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-VenueService/internal/infra/storage/catalog"
)

var oneHundred = decimal.NewFromInt(100)

// Service движок расчёта стоимости бронирования.
// Не имеет состояния: повторный вызов с теми же входными данными дает
// тот же результат (настройки читаются на каждый вызов).
type Service struct {
	catalogRepo  CatalogRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр движка расчёта
func NewService(catalogRepo CatalogRepository, settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// CalculateTotal считает полную стоимость бронирования.
//
// hall_price - базовая цена зала (0, если зал не найден: существование зала
// валидирует вызывающий код, движок отвечает только за арифметику).
// menu_total - сумма по каждому вхождению menuIDs: цена за человека x гости.
// Дубликаты ID тарифицируются повторно, дедупликации нет.
// services_total - сумма фиксированных цен услуг, число гостей не участвует.
func (s *Service) CalculateTotal(ctx context.Context, hallID int64, menuIDs []int64, guests int, serviceIDs []int64) (*Quote, error) {
	if guests < 0 {
		return nil, fmt.Errorf("%w: guests must not be negative", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("CalculateTotal: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	hallPrice := decimal.Zero
	hall, err := s.catalogRepo.GetHall(ctx, hallID)
	switch {
	case err == nil:
		hallPrice = hall.BasePrice
	case errors.Is(err, catalogRepo.ErrHallNotFound):
		// Молчаливый ноль - контракт движка; вызывающий код проверяет зал отдельно
		s.logger.Warn("CalculateTotal: hall id=%d not found, using zero hall price", hallID)
	default:
		s.logger.Error("CalculateTotal: failed to get hall id=%d: %v", hallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	menus, err := s.catalogRepo.GetMenusByIDs(ctx, menuIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrMenuNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrMenuNotFound, err)
		}
		s.logger.Error("CalculateTotal: failed to get menus: %v", err)
		return nil, fmt.Errorf("%w: failed to get menus: %v", ErrInternal, err)
	}

	services, err := s.catalogRepo.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		s.logger.Error("CalculateTotal: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	guestsDec := decimal.NewFromInt(int64(guests))

	menuTotal := decimal.Zero
	menuLines := make([]domain.BookingMenu, 0, len(menus))
	for _, menu := range menus {
		lineTotal := menu.PricePerPerson.Mul(guestsDec)
		menuTotal = menuTotal.Add(lineTotal)
		menuLines = append(menuLines, domain.BookingMenu{
			MenuID:         menu.ID,
			MenuName:       menu.Name,
			PricePerPerson: menu.PricePerPerson,
			NumberOfGuests: guests,
			TotalPrice:     lineTotal,
		})
	}

	servicesTotal := decimal.Zero
	serviceLines := make([]domain.BookingService, 0, len(services))
	for _, svc := range services {
		servicesTotal = servicesTotal.Add(svc.Price)
		serviceLines = append(serviceLines, domain.BookingService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
			Category:    svc.Category,
			Quantity:    domain.DefaultServiceQuantity,
			TotalPrice:  svc.Price,
		})
	}

	subtotal := hallPrice.Add(menuTotal).Add(servicesTotal)
	taxAmount := subtotal.Mul(settings.TaxRate).Div(oneHundred)
	grandTotal := subtotal.Add(taxAmount)

	return &Quote{
		HallPrice:      hallPrice,
		MenuTotal:      menuTotal,
		ServicesTotal:  servicesTotal,
		Subtotal:       subtotal,
		TaxRate:        settings.TaxRate,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
		Currency:       settings.Currency,
		CurrencySymbol: settings.CurrencySymbol,
		MenuLines:      menuLines,
		ServiceLines:   serviceLines,
	}, nil
}

// CalculateAdvance считает предоплату от итоговой суммы по проценту
// из настроек (на момент вызова)
func (s *Service) CalculateAdvance(ctx context.Context, grandTotal decimal.Decimal) (*Advance, error) {
	settings, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Error("CalculateAdvance: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	advance := AdvanceFromSettings(settings, grandTotal)
	return &advance, nil
}

// AdvanceFromSettings чистый расчёт предоплаты от уже загруженных настроек
func AdvanceFromSettings(settings domain.Settings, grandTotal decimal.Decimal) Advance {
	return Advance{
		Percentage: settings.AdvancePercentage,
		Amount:     grandTotal.Mul(settings.AdvancePercentage).Div(oneHundred),
	}
}

// BalanceDue остаток к оплате: grand_total минус подтвержденные платежи
// минус предоплата (если флаг получения предоплаты установлен).
// Никогда не отрицательный - результат прижимается к нулю.
func BalanceDue(grandTotal, verifiedSum, advanceAmount decimal.Decimal, advanceReceived bool) decimal.Decimal {
	due := grandTotal.Sub(verifiedSum)
	if advanceReceived {
		due = due.Sub(advanceAmount)
	}
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}
