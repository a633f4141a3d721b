package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("audit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("audit.repository: failed to execute query")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала аудита.
// Запись делается в той же транзакции, что и мутация - аудит не может
// разойтись с данными.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аудита
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert пишет запись аудита
func (r *Repository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("audit_log").
		Columns("actor", "action", "table_name", "record_id", "description").
		Values(entry.Actor, entry.Action, entry.TableName, entry.RecordID, entry.Description).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
