package commission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fleetops/FPB-BookingService/internal/domain"
	"github.com/fleetops/FPB-BookingService/pkg/dbmetrics"
	"github.com/fleetops/FPB-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var commissionColumns = []string{
	"id",
	"partner_id",
	"booking_id",
	"amount",
	"status",
	"paid_at",
	"payment_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий реестра комиссий платформы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комиссий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись комиссии.
// Уникальный индекс по booking_id гарантирует не более одной комиссии
// на бронирование: повторная вставка мапится в ErrDuplicateCommission.
func (r *Repository) Create(ctx context.Context, c *domain.Commission) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("commissions").
		Columns(
			"partner_id",
			"booking_id",
			"amount",
			"status",
		).
		Values(
			c.PartnerID,
			c.BookingID,
			c.Amount,
			c.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCommission
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает комиссию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByBookingID получает комиссию по ID бронирования
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	return r.getOne(ctx, "GetByBookingID", squirrel.Eq{"booking_id": bookingID})
}

// GetByPartner получает комиссии партнера, опционально фильтруя по статусу,
// новые первыми
func (r *Repository) GetByPartner(ctx context.Context, partnerID int64, status *domain.CommissionStatus) ([]*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(commissionColumns...).
		From("commissions").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	commissions := make([]*domain.Commission, 0)
	for rows.Next() {
		c, err := scanCommission(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPartner - scan row: %v", ErrScanRow, err)
		}
		commissions = append(commissions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - rows error: %v", ErrScanRow, err)
	}

	return commissions, nil
}

// MarkPaid переводит комиссию pending -> paid с референсом платежа.
// Обновление условное (WHERE status = 'pending'): повторная выплата
// различается от отсутствия записи дополнительным чтением.
func (r *Repository) MarkPaid(ctx context.Context, id int64, paymentReference string) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("commissions").
		Set("status", domain.CommissionPaid).
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("payment_reference", paymentReference).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.CommissionPending}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing.IsPaid() {
			return nil, ErrAlreadyPaid
		}
		return nil, ErrCommissionNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Commission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(commissionColumns...).
		From("commissions").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	c, err := scanCommission(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCommissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan commission: %v", ErrScanRow, op, err)
	}

	return c, nil
}

func scanCommission(scan func(dest ...interface{}) error) (*domain.Commission, error) {
	var c domain.Commission
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&c.ID,
		&c.PartnerID,
		&c.BookingID,
		&c.Amount,
		&c.Status,
		&c.PaidAt,
		&c.PaymentReference,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// isUniqueViolation проверяет ошибку PostgreSQL unique_violation (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
