package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/dbmetrics"
	"github.com/fleetops/FPB-BookingService/pkg/psqlbuilder"
)

// Колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"partner_id",
	"tenant_id",
	"vehicle_id",
	"driver_id",
	"service_id",
	"scheduled_date",
	"start_time",
	"end_time",
	"status",
	"price",
	"commission_rate",
	"commission_amount",
	"payment_status",
	"service_name",
	"customer_notes",
	"partner_notes",
	"rejection_reason",
	"cancellation_reason",
	"confirmed_at",
	"completed_at",
	"paid_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending.
// Если в контексте передана активная транзакция, использует её —
// создание всегда должно происходить в той же транзакции, что и
// проверка доступности слота (защита от race condition).
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"partner_id",
			"tenant_id",
			"vehicle_id",
			"driver_id",
			"service_id",
			"scheduled_date",
			"start_time",
			"end_time",
			"status",
			"price",
			"commission_rate",
			"payment_status",
			"service_name",
			"customer_notes",
		).
		Values(
			b.PartnerID,
			b.TenantID,
			b.VehicleID,
			b.DriverID,
			b.ServiceID,
			b.Scheduled,
			b.StartTime,
			b.EndTime,
			b.Status,
			b.Price,
			b.CommissionRate,
			b.PaymentStatus,
			b.ServiceName,
			b.CustomerNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы проверка
// перехода статуса и сама мутация были атомарны.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByPartnerAndDate получает бронирования партнера на дату, занимающие
// слоты календаря (статусы cancelled/rejected исключены).
// Внутри транзакции строки блокируются (FOR UPDATE) — так два конкурентных
// создания бронирования на один слот сериализуются на уровне БД.
func (r *Repository) GetByPartnerAndDate(ctx context.Context, partnerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blocking := make([]string, len(domain.BlockingStatuses))
	for i, s := range domain.BlockingStatuses {
		blocking[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.Eq{"status": blocking}).
		Where("deleted_at IS NULL").
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByTenantWithFilter получает бронирования арендатора с фильтрацией и
// пагинацией. Возвращает страницу и общее количество записей под фильтром.
func (r *Repository) GetByTenantWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		b = b.From("bookings").
			Where(squirrel.Eq{"tenant_id": filter.TenantID}).
			Where("deleted_at IS NULL")
		if filter.Status != nil {
			b = b.Where(squirrel.Eq{"status": *filter.Status})
		}
		if filter.PartnerID != nil {
			b = b.Where(squirrel.Eq{"partner_id": *filter.PartnerID})
		}
		if filter.VehicleID != nil {
			b = b.Where(squirrel.Eq{"vehicle_id": *filter.VehicleID})
		}
		if filter.StartDate != nil {
			b = b.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
		}
		if filter.EndDate != nil {
			b = b.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
		}
		return b
	}

	// Общее количество под фильтром
	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByTenantWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: GetByTenantWithFilter - scan count: %v", ErrScanRow, err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultPageLimit
	}

	query, args, err := applyFilter(psqlbuilder.Select(bookingColumns...)).
		OrderBy("scheduled_date DESC, start_time DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByTenantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByTenantWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetUpcoming получает бронирования арендатора в интервале дат [from, to]
// в еще не завершенных статусах, ближайшие первыми
func (r *Repository) GetUpcoming(ctx context.Context, tenantID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
			string(domain.StatusInProgress),
		}}).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		Where("deleted_at IS NULL").
		OrderBy("scheduled_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcoming - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит бронирование в confirmed и фиксирует момент подтверждения
func (r *Repository) Confirm(ctx context.Context, id int64, confirmedAt time.Time) error {
	return r.update(ctx, "Confirm", psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", confirmedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL"))
}

// Reject переводит бронирование в rejected с причиной отказа
func (r *Repository) Reject(ctx context.Context, id int64, reason string) error {
	return r.update(ctx, "Reject", psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL"))
}

// Start переводит бронирование в in_progress
func (r *Repository) Start(ctx context.Context, id int64) error {
	return r.update(ctx, "Start", psqlbuilder.Update("bookings").
		Set("status", domain.StatusInProgress).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL"))
}

// Complete переводит бронирование в completed, фиксирует момент завершения
// и сумму комиссии, рассчитанную по зафиксированной ставке
func (r *Repository) Complete(ctx context.Context, id int64, completedAt time.Time, commissionAmount float64, partnerNotes *string) error {
	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("completed_at", completedAt).
		Set("commission_amount", commissionAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL")

	if partnerNotes != nil {
		updateBuilder = updateBuilder.Set("partner_notes", *partnerNotes)
	}

	return r.update(ctx, "Complete", updateBuilder)
}

// Cancel переводит бронирование в cancelled с причиной отмены
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	return r.update(ctx, "Cancel", psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL"))
}

func (r *Repository) update(ctx context.Context, op string, builder squirrel.UpdateBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
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

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&b.ID,
		&b.PartnerID,
		&b.TenantID,
		&b.VehicleID,
		&b.DriverID,
		&b.ServiceID,
		&b.Scheduled,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Price,
		&b.CommissionRate,
		&b.CommissionAmount,
		&b.PaymentStatus,
		&b.ServiceName,
		&b.CustomerNotes,
		&b.PartnerNotes,
		&b.RejectionReason,
		&b.CancellationReason,
		&b.ConfirmedAt,
		&b.CompletedAt,
		&b.PaidAt,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
