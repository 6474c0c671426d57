package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/pkg/dbmetrics"
	"github.com/clubaltavista/CDA-ReservationService/pkg/psqlbuilder"
)

// profileColumns полный набор колонок таблицы member_profiles
var profileColumns = []string{
	"id",
	"membership_id",
	"first_name",
	"last_name",
	"role",
	"date_of_birth",
	"is_minor",
	"is_active",
	"permissions",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с профилями членов семьи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль по ID. Набор разрешений (JSONB) валидируется
// на границе чтения - профиль с битыми разрешениями не попадает в домен.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.MemberProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("member_profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	profile, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// GetByMembershipID получает все профили членства.
// Используется для поиска одобряющих при уведомлениях.
func (r *Repository) GetByMembershipID(ctx context.Context, membershipID int64) ([]*domain.MemberProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(profileColumns...).
		From("member_profiles").
		Where(squirrel.Eq{"membership_id": membershipID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMembershipID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMembershipID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	profiles := make([]*domain.MemberProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMembershipID - rows error: %v", ErrScanRow, err)
	}

	return profiles, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProfile сканирует строку в профиль и разбирает JSONB разрешений
func scanProfile(row rowScanner) (*domain.MemberProfile, error) {
	var profile domain.MemberProfile
	var permissionsRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&profile.ID,
		&profile.MembershipID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Role,
		&profile.DateOfBirth,
		&profile.IsMinor,
		&profile.IsActive,
		&permissionsRaw,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanProfile - scan row: %v", ErrScanRow, err)
	}

	if len(permissionsRaw) > 0 {
		if err := json.Unmarshal(permissionsRaw, &profile.Permissions); err != nil {
			return nil, fmt.Errorf("%w: scanProfile - unmarshal permissions: %v", ErrInvalidPermissions, err)
		}
	}
	if err := profile.Permissions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPermissions, err)
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}
