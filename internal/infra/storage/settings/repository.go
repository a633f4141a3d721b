package settings

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

// Ключи таблицы settings
const (
	keyTaxRate           = "tax_rate"
	keyAdvancePercentage = "advance_payment_percentage"
	keyCurrency          = "currency"
	keyCurrencySymbol    = "currency_symbol"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository read-through репозиторий key-value настроек.
// Отсутствующие или нечитаемые значения заменяются явными дефолтами -
// вызывающий код всегда получает полностью заполненный domain.Settings.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load читает все известные ключи одним запросом и собирает типизированные
// настройки. Вызывается один раз на запрос/транзакцию - значения не могут
// измениться посреди расчёта.
func (r *Repository) Load(ctx context.Context) (domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result := domain.DefaultSettings()

	query, args, err := psqlbuilder.Select("key", "value").
		From("settings").
		Where(squirrel.Eq{"key": []string{
			keyTaxRate,
			keyAdvancePercentage,
			keyCurrency,
			keyCurrencySymbol,
		}}).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return result, fmt.Errorf("%w: Load - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return result, fmt.Errorf("%w: Load - scan setting: %v", ErrScanRow, err)
		}

		switch key {
		case keyTaxRate:
			if v, err := decimal.NewFromString(value); err == nil {
				result.TaxRate = v
			}
		case keyAdvancePercentage:
			if v, err := decimal.NewFromString(value); err == nil {
				result.AdvancePercentage = v
			}
		case keyCurrency:
			if value != "" {
				result.Currency = value
			}
		case keyCurrencySymbol:
			if value != "" {
				result.CurrencySymbol = value
			}
		}
	}

	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("%w: Load - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Set записывает значение настройки (upsert по ключу)
func (r *Repository) Set(ctx context.Context, key, value string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
