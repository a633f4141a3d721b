package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

// Repository репозиторий справочников: площадки, залы, меню, услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetVenue получает площадку по ID
func (r *Repository) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "status", "created_at", "updated_at",
	).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - build select query: %v", ErrBuildQuery, err)
	}

	var venue domain.Venue
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenue - scan venue: %v", ErrScanRow, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

// GetHall получает зал по ID
func (r *Repository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "name", "capacity", "base_price", "status", "created_at", "updated_at",
	).
		From("halls").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHall - build select query: %v", ErrBuildQuery, err)
	}

	var hall domain.Hall
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hall.ID,
		&hall.VenueID,
		&hall.Name,
		&hall.Capacity,
		&hall.BasePrice,
		&hall.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetHall - scan hall: %v", ErrScanRow, err)
	}

	hall.CreatedAt = createdAt.Time
	hall.UpdatedAt = updatedAt.Time

	return &hall, nil
}

// ListHallsByVenue получает все залы площадки
func (r *Repository) ListHallsByVenue(ctx context.Context, venueID int64) ([]*domain.Hall, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "venue_id", "name", "capacity", "base_price", "status", "created_at", "updated_at",
	).
		From("halls").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHallsByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHallsByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	halls := make([]*domain.Hall, 0)
	for rows.Next() {
		var hall domain.Hall
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&hall.ID,
			&hall.VenueID,
			&hall.Name,
			&hall.Capacity,
			&hall.BasePrice,
			&hall.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListHallsByVenue - scan row: %v", ErrScanRow, err)
		}

		hall.CreatedAt = createdAt.Time
		hall.UpdatedAt = updatedAt.Time
		halls = append(halls, &hall)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHallsByVenue - rows error: %v", ErrScanRow, err)
	}

	return halls, nil
}

// GetMenusByIDs получает меню по списку ID.
// Порядок результата повторяет порядок входных ID; дубликаты входных ID
// дают дубликаты в результате (каждое вхождение тарифицируется отдельно).
// Если хотя бы одно меню не найдено, возвращает ErrMenuNotFound.
func (r *Repository) GetMenusByIDs(ctx context.Context, ids []int64) ([]*domain.Menu, error) {
	if len(ids) == 0 {
		return []*domain.Menu{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "price_per_person", "status", "created_at", "updated_at",
	).
		From("menus").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenusByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenusByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Menu)
	for rows.Next() {
		var menu domain.Menu
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&menu.ID,
			&menu.Name,
			&menu.PricePerPerson,
			&menu.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetMenusByIDs - scan row: %v", ErrScanRow, err)
		}

		menu.CreatedAt = createdAt.Time
		menu.UpdatedAt = updatedAt.Time
		byID[menu.ID] = &menu
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMenusByIDs - rows error: %v", ErrScanRow, err)
	}

	result := make([]*domain.Menu, 0, len(ids))
	for _, id := range ids {
		menu, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: menu id=%d", ErrMenuNotFound, id)
		}
		result = append(result, menu)
	}

	return result, nil
}

// GetServicesByIDs получает дополнительные услуги по списку ID.
// Порядок результата повторяет порядок входных ID.
// Если хотя бы одна услуга не найдена, возвращает ErrServiceNotFound.
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.AdditionalService, error) {
	if len(ids) == 0 {
		return []*domain.AdditionalService{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "price", "category", "status", "created_at", "updated_at",
	).
		From("additional_services").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.AdditionalService)
	for rows.Next() {
		var svc domain.AdditionalService
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&svc.ID,
			&svc.Name,
			&svc.Price,
			&svc.Category,
			&svc.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan row: %v", ErrScanRow, err)
		}

		svc.CreatedAt = createdAt.Time
		svc.UpdatedAt = updatedAt.Time
		byID[svc.ID] = &svc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %v", ErrScanRow, err)
	}

	result := make([]*domain.AdditionalService, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, id)
		}
		result = append(result, svc)
	}

	return result, nil
}

// GetHallMenuIDs получает ID меню, привязанных к залу (таблица hall_menus)
func (r *Repository) GetHallMenuIDs(ctx context.Context, hallID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("menu_id").
		From("hall_menus").
		Where(squirrel.Eq{"hall_id": hallID}).
		OrderBy("menu_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHallMenuIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHallMenuIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetHallMenuIDs - scan menu_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHallMenuIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}
