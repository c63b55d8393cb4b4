package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/dbmetrics"
	"github.com/fleetops/FPB-BookingService/pkg/psqlbuilder"
	"github.com/fleetops/FPB-BookingService/pkg/types"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var windowColumns = []string{
	"id",
	"partner_id",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"created_at",
	"updated_at",
}

var unavailabilityColumns = []string{
	"id",
	"partner_id",
	"date",
	"reason",
	"is_full_day",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий календаря партнера:
// еженедельные окна доступности и разовые исключения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateWindow создает окно доступности.
// Уникальность (partner_id, day_of_week) среди неудаленных окон
// обеспечивается частичным индексом; нарушение мапится в ErrDuplicateWindow.
func (r *Repository) CreateWindow(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_windows").
		Columns(
			"partner_id",
			"day_of_week",
			"start_time",
			"end_time",
			"slot_duration_minutes",
		).
		Values(
			w.PartnerID,
			w.DayOfWeek,
			w.StartTime,
			w.EndTime,
			w.SlotDurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWindow - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&w.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateWindow
		}
		return nil, fmt.Errorf("%w: CreateWindow - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return w, nil
}

// GetWindowByPartnerAndDay получает окно партнера на день недели
func (r *Repository) GetWindowByPartnerAndDay(ctx context.Context, partnerID int64, dayOfWeek int) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowByPartnerAndDay - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	w, err := scanWindow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowByPartnerAndDay - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// GetWindowsByPartner получает все неудаленные окна партнера,
// упорядоченные по дню недели
func (r *Repository) GetWindowsByPartner(ctx context.Context, partnerID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where("deleted_at IS NULL").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWindowsByPartner - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByPartner - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// SoftDeleteWindow мягко удаляет окно партнера на день недели.
// Отсутствие окна ошибкой не считается: операция идемпотентна,
// сервис расписания вызывает её при полной замене недельной сетки.
func (r *Repository) SoftDeleteWindow(ctx context.Context, partnerID int64, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_windows").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDeleteWindow - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SoftDeleteWindow - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateUnavailability создает разовое исключение из расписания
func (r *Repository) CreateUnavailability(ctx context.Context, u *domain.Unavailability) (*domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailabilities").
		Columns(
			"partner_id",
			"date",
			"reason",
			"is_full_day",
			"start_time",
			"end_time",
		).
		Values(
			u.PartnerID,
			u.Date,
			u.Reason,
			u.IsFullDay,
			u.StartTime,
			u.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailability - execute insert: %v", ErrExecQuery, err)
	}

	u.CreatedAt = createdAt.Time

	return u, nil
}

// GetUnavailabilitiesByDate получает исключения партнера на конкретную дату
func (r *Repository) GetUnavailabilitiesByDate(ctx context.Context, partnerID int64, date time.Time) ([]*domain.Unavailability, error) {
	return r.listUnavailabilities(ctx, "GetUnavailabilitiesByDate", squirrel.And{
		squirrel.Eq{"partner_id": partnerID},
		squirrel.Eq{"date": date},
	})
}

// GetUnavailabilitiesFrom получает исключения партнера начиная с даты from
func (r *Repository) GetUnavailabilitiesFrom(ctx context.Context, partnerID int64, from time.Time) ([]*domain.Unavailability, error) {
	return r.listUnavailabilities(ctx, "GetUnavailabilitiesFrom", squirrel.And{
		squirrel.Eq{"partner_id": partnerID},
		squirrel.GtOrEq{"date": from},
	})
}

// DeleteUnavailabilitiesFrom удаляет исключения партнера начиная с даты from.
// Используется сервисом расписания при полной замене списка исключений.
func (r *Repository) DeleteUnavailabilitiesFrom(ctx context.Context, partnerID int64, from time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unavailabilities").
		Where(squirrel.Eq{"partner_id": partnerID}).
		Where(squirrel.GtOrEq{"date": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailabilitiesFrom - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteUnavailabilitiesFrom - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) listUnavailabilities(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(unavailabilityColumns...).
		From("unavailabilities").
		Where(where).
		OrderBy("date ASC, start_time ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Unavailability, 0)
	for rows.Next() {
		var u domain.Unavailability
		var startTime, endTime types.TimeString
		var createdAt sql.NullTime

		err := rows.Scan(
			&u.ID,
			&u.PartnerID,
			&u.Date,
			&u.Reason,
			&u.IsFullDay,
			&startTime,
			&endTime,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		// NULL для полнодневных исключений
		if !startTime.IsZero() {
			u.StartTime = &startTime
		}
		if !endTime.IsZero() {
			u.EndTime = &endTime
		}

		u.CreatedAt = createdAt.Time
		items = append(items, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}

func scanWindow(scan func(dest ...interface{}) error) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&w.ID,
		&w.PartnerID,
		&w.DayOfWeek,
		&w.StartTime,
		&w.EndTime,
		&w.SlotDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}

// isUniqueViolation проверяет ошибку PostgreSQL unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
