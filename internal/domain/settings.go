package domain

import "github.com/shopspring/decimal"

// Settings типизированная конфигурация расчётов, собранная из key-value
// таблицы settings с явными дефолтами. Загружается один раз на
// запрос/транзакцию - значения не могут "протухнуть" посреди расчёта.
type Settings struct {
	TaxRate           decimal.Decimal // процент налога, по умолчанию 13
	AdvancePercentage decimal.Decimal // процент предоплаты, по умолчанию 30
	Currency          string
	CurrencySymbol    string
}

// DefaultSettings возвращает настройки с дефолтными значениями
func DefaultSettings() Settings {
	return Settings{
		TaxRate:           decimal.NewFromInt(DefaultTaxRatePercent),
		AdvancePercentage: decimal.NewFromInt(DefaultAdvancePercent),
		Currency:          DefaultCurrency,
		CurrencySymbol:    DefaultCurrencySymbol,
	}
}
