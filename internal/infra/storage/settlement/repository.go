package settlement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/pkg/dbmetrics"
	"github.com/clubaltavista/CDA-ReservationService/pkg/psqlbuilder"
)

// settlementColumns полный набор колонок таблицы staff_settlements
var settlementColumns = []string{
	"id",
	"staff_id",
	"period_start",
	"period_end",
	"settlement_type",
	"total_services",
	"gross_revenue",
	"club_commission",
	"staff_payout",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расчётами персонала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расчётов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает расчёт выплаты
func (r *Repository) Create(ctx context.Context, s *domain.StaffSettlement) (*domain.StaffSettlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_settlements").
		Columns(
			"staff_id",
			"period_start",
			"period_end",
			"settlement_type",
			"total_services",
			"gross_revenue",
			"club_commission",
			"staff_payout",
			"status",
		).
		Values(
			s.StaffID,
			s.PeriodStart,
			s.PeriodEnd,
			s.Type,
			s.TotalServices,
			s.GrossRevenue,
			s.ClubCommission,
			s.StaffPayout,
			s.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// ExistsForStaffAndPeriod проверяет, есть ли у сотрудника расчёт за точный период.
// Генерация расчётов идемпотентна: повторный запуск за тот же период пропускает
// уже рассчитанных сотрудников.
func (r *Repository) ExistsForStaffAndPeriod(ctx context.Context, staffID int64, periodStart, periodEnd time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("staff_settlements").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"period_start": periodStart}).
		Where(squirrel.Eq{"period_end": periodEnd}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForStaffAndPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: ExistsForStaffAndPeriod - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// GetByPeriod получает все расчёты за период
func (r *Repository) GetByPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]*domain.StaffSettlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settlementColumns...).
		From("staff_settlements").
		Where(squirrel.Eq{"period_start": periodStart}).
		Where(squirrel.Eq{"period_end": periodEnd}).
		OrderBy("staff_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	settlements := make([]*domain.StaffSettlement, 0)
	for rows.Next() {
		var s domain.StaffSettlement
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.StaffID,
			&s.PeriodStart,
			&s.PeriodEnd,
			&s.Type,
			&s.TotalServices,
			&s.GrossRevenue,
			&s.ClubCommission,
			&s.StaffPayout,
			&s.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPeriod - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		settlements = append(settlements, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPeriod - rows error: %v", ErrScanRow, err)
	}

	return settlements, nil
}
