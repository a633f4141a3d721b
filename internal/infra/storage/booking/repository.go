package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// slotUniqueConstraint частичный уникальный индекс по активному слоту
// (hall_id, event_date, shift) из миграции 000002
const slotUniqueConstraint = "uq_bookings_active_slot"

var bookingColumns = []string{
	"id",
	"booking_number",
	"customer_id",
	"hall_id",
	"event_date",
	"shift",
	"event_type",
	"number_of_guests",
	"hall_price",
	"menu_total",
	"services_total",
	"subtotal",
	"tax_amount",
	"grand_total",
	"special_requests",
	"booking_status",
	"payment_status",
	"advance_payment_received",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Нарушение частичного уникального индекса по (hall_id, event_date, shift)
// на некансельных строках транслируется в ErrSlotTaken - так конкурентные
// создания на один слот получают ровно один успех.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"customer_id",
			"hall_id",
			"event_date",
			"shift",
			"event_type",
			"number_of_guests",
			"hall_price",
			"menu_total",
			"services_total",
			"subtotal",
			"tax_amount",
			"grand_total",
			"special_requests",
			"booking_status",
			"payment_status",
			"advance_payment_received",
		).
		Values(
			booking.BookingNumber,
			booking.CustomerID,
			booking.HallID,
			booking.EventDate,
			booking.Shift,
			booking.EventType,
			booking.NumberOfGuests,
			booking.HallPrice,
			booking.MenuTotal,
			booking.ServicesTotal,
			booking.Subtotal,
			booking.TaxAmount,
			booking.GrandTotal,
			booking.SpecialRequests,
			booking.BookingStatus,
			booking.PaymentStatus,
			booking.AdvancePaymentReceived,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isSlotConflict(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Update обновляет бронирование целиком (поля заказа и пересчитанные суммы)
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("hall_id", booking.HallID).
		Set("event_date", booking.EventDate).
		Set("shift", booking.Shift).
		Set("event_type", booking.EventType).
		Set("number_of_guests", booking.NumberOfGuests).
		Set("hall_price", booking.HallPrice).
		Set("menu_total", booking.MenuTotal).
		Set("services_total", booking.ServicesTotal).
		Set("subtotal", booking.Subtotal).
		Set("tax_amount", booking.TaxAmount).
		Set("grand_total", booking.GrandTotal).
		Set("special_requests", booking.SpecialRequests).
		Set("booking_status", booking.BookingStatus).
		Set("payment_status", booking.PaymentStatus).
		Set("advance_payment_received", booking.AdvancePaymentReceived).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID (без позиций)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByNumber получает бронирование по человекочитаемому номеру
func (r *Repository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNumber - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountActiveBySlot подсчитывает некансельные бронирования на тройку
// (hall_id, event_date, shift), опционально исключая одно бронирование
// (используется при редактировании на месте).
// Внутри транзакции строки блокируются через FOR UPDATE, поэтому выборка
// идет по id, а не через агрегат COUNT.
func (r *Repository) CountActiveBySlot(ctx context.Context, hallID int64, date time.Time, shift domain.Shift, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"hall_id": hallID}).
		Where(squirrel.Eq{"event_date": date}).
		Where(squirrel.Eq{"shift": shift}).
		Where(squirrel.NotEq{"booking_status": domain.StatusCancelled})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("%w: CountActiveBySlot - scan id: %v", ErrScanRow, err)
		}
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - rows error: %v", ErrScanRow, err)
	}

	return count, nil
}

// MaxSequenceForDay возвращает максимальный порядковый номер бронирования
// за календарный день (0, если бронирований за день еще нет).
// Используется генератором номеров BK-YYYYMMDD-NNNN.
func (r *Repository) MaxSequenceForDay(ctx context.Context, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	prefix := "BK-" + day.Format(domain.BookingDateFormat) + "-%"

	query, args, err := psqlbuilder.Select(
		"COALESCE(MAX(CAST(RIGHT(booking_number, 4) AS INTEGER)), 0)",
	).
		From("bookings").
		Where(squirrel.Like{"booking_number": prefix}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MaxSequenceForDay - build select query: %v", ErrBuildQuery, err)
	}

	var maxSeq int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("%w: MaxSequenceForDay - scan max sequence: %v", ErrScanRow, err)
	}

	return maxSeq, nil
}

// ListWithFilter получает бронирования с фильтрацией для админки.
// Фильтр по площадке идет через JOIN с таблицей halls.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, len(bookingColumns))
	for i, c := range bookingColumns {
		columns[i] = "b." + c
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings b")

	if filter.VenueID != nil {
		selectBuilder = selectBuilder.
			Join("halls h ON h.id = b.hall_id").
			Where(squirrel.Eq{"h.venue_id": *filter.VenueID})
	}
	if filter.HallID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.hall_id": *filter.HallID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.event_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"b.event_date": *filter.EndDate})
	}
	if filter.BookingStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booking_status": *filter.BookingStatus})
	}
	if filter.PaymentStatus != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.payment_status": *filter.PaymentStatus})
	}

	selectBuilder = selectBuilder.OrderBy("b.event_date DESC, b.id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// InsertMenuItems вставляет позиции меню бронирования
func (r *Repository) InsertMenuItems(ctx context.Context, bookingID int64, items []domain.BookingMenu) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_menus").
		Columns("booking_id", "menu_id", "menu_name", "price_per_person", "number_of_guests", "total_price")
	for _, item := range items {
		insertBuilder = insertBuilder.Values(
			bookingID,
			item.MenuID,
			item.MenuName,
			item.PricePerPerson,
			item.NumberOfGuests,
			item.TotalPrice,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertMenuItems - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertMenuItems - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// InsertServiceItems вставляет позиции дополнительных услуг бронирования
func (r *Repository) InsertServiceItems(ctx context.Context, bookingID int64, items []domain.BookingService) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_services").
		Columns("booking_id", "service_id", "service_name", "price", "category", "added_by", "quantity", "total_price")
	for _, item := range items {
		insertBuilder = insertBuilder.Values(
			bookingID,
			item.ServiceID,
			item.ServiceName,
			item.Price,
			item.Category,
			item.AddedBy,
			item.Quantity,
			item.TotalPrice,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertServiceItems - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertServiceItems - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteMenuItems удаляет все позиции меню бронирования
// (используется при редактировании по схеме delete-then-reinsert)
func (r *Repository) DeleteMenuItems(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_menus").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteMenuItems - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteMenuItems - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteServiceItems удаляет все позиции услуг бронирования
func (r *Repository) DeleteServiceItems(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_services").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteServiceItems - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteServiceItems - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// GetMenuItems получает позиции меню бронирования
func (r *Repository) GetMenuItems(ctx context.Context, bookingID int64) ([]domain.BookingMenu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "booking_id", "menu_id", "menu_name", "price_per_person", "number_of_guests", "total_price",
	).
		From("booking_menus").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenuItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMenuItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingMenu, 0)
	for rows.Next() {
		var item domain.BookingMenu
		if err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.MenuID,
			&item.MenuName,
			&item.PricePerPerson,
			&item.NumberOfGuests,
			&item.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: GetMenuItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMenuItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// GetServiceItems получает позиции услуг бронирования
func (r *Repository) GetServiceItems(ctx context.Context, bookingID int64) ([]domain.BookingService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "booking_id", "service_id", "service_name", "price", "category", "added_by", "quantity", "total_price",
	).
		From("booking_services").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingService, 0)
	for rows.Next() {
		var item domain.BookingService
		if err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ServiceID,
			&item.ServiceName,
			&item.Price,
			&item.Category,
			&item.AddedBy,
			&item.Quantity,
			&item.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("%w: GetServiceItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.updateField(ctx, id, "booking_status", status, "UpdateStatus")
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.updateField(ctx, id, "payment_status", status, "UpdatePaymentStatus")
}

// UpdateAdvanceReceived обновляет флаг получения предоплаты
func (r *Repository) UpdateAdvanceReceived(ctx context.Context, id int64, received bool) error {
	return r.updateField(ctx, id, "advance_payment_received", received, "UpdateAdvanceReceived")
}

// Delete удаляет бронирование (физическое удаление).
// Позиции и платежи удаляются отдельными вызовами внутри одной транзакции.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) updateField(ctx context.Context, id int64, column string, value interface{}, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.CustomerID,
		&booking.HallID,
		&booking.EventDate,
		&booking.Shift,
		&booking.EventType,
		&booking.NumberOfGuests,
		&booking.HallPrice,
		&booking.MenuTotal,
		&booking.ServicesTotal,
		&booking.Subtotal,
		&booking.TaxAmount,
		&booking.GrandTotal,
		&booking.SpecialRequests,
		&booking.BookingStatus,
		&booking.PaymentStatus,
		&booking.AdvancePaymentReceived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isSlotConflict проверяет нарушение частичного уникального индекса по слоту.
// Другие unique-нарушения (booking_number) конфликтом слота не считаются
// и уходят в общий ErrExecQuery.
func isSlotConflict(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		string(pqErr.Code) == pgUniqueViolation &&
		pqErr.Constraint == slotUniqueConstraint
}
