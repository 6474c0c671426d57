package domain

import (
	"fmt"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// ServiceCategory категория бронируемой услуги/ресурса
type ServiceCategory string

const (
	CategorySpa      ServiceCategory = "spa"
	CategoryBarberia ServiceCategory = "barberia"
	CategoryDeportes ServiceCategory = "deportes"
	CategoryAlberca  ServiceCategory = "alberca"
)

// PermissionSet набор делегированных разрешений профиля.
// Хранится в БД как JSONB, валидируется на границе чтения/записи.
type PermissionSet struct {
	CanBookSpa              bool `json:"can_book_spa"`
	CanBookBarberia         bool `json:"can_book_barberia"`
	CanBookDeportes         bool `json:"can_book_deportes"`
	CanBookAlberca          bool `json:"can_book_alberca"`
	CanRentLocker           bool `json:"can_rent_locker"`
	CanMakePayments         bool `json:"can_make_payments"`
	CanManageBeneficiaries  bool `json:"can_manage_beneficiaries"`
	CanApproveReservations  bool `json:"can_approve_reservations"`
	CanViewAccountStatement bool `json:"can_view_account_statement"`

	RequiresApproval bool `json:"requires_approval"`

	MaxActiveReservations *int              `json:"max_active_reservations"`
	SpendingLimitMonthly  *float64          `json:"spending_limit_monthly"`
	AllowedHoursStart     *types.TimeString `json:"allowed_hours_start"`
	AllowedHoursEnd       *types.TimeString `json:"allowed_hours_end"`
}

// DefaultPermissions возвращает набор разрешений по умолчанию для роли.
// Применяется при создании профиля, дальше набор живёт своей жизнью.
func DefaultPermissions(role ProfileRole, isMinor bool) PermissionSet {
	if role == RoleTitular {
		return PermissionSet{
			CanBookSpa:              true,
			CanBookBarberia:         true,
			CanBookDeportes:         true,
			CanBookAlberca:          true,
			CanRentLocker:           true,
			CanMakePayments:         true,
			CanManageBeneficiaries:  true,
			CanApproveReservations:  true,
			CanViewAccountStatement: true,
		}
	}

	if role == RoleHijo && isMinor {
		maxActive := 2
		spendingLimit := 2000.0
		hoursStart := types.TimeString("07:00")
		hoursEnd := types.TimeString("20:00")

		return PermissionSet{
			CanBookDeportes:       true,
			CanBookAlberca:        true,
			RequiresApproval:      true,
			MaxActiveReservations: &maxActive,
			SpendingLimitMonthly:  &spendingLimit,
			AllowedHoursStart:     &hoursStart,
			AllowedHoursEnd:       &hoursEnd,
		}
	}

	// conyugue или совершеннолетний hijo
	return PermissionSet{
		CanBookSpa:              true,
		CanBookBarberia:         true,
		CanBookDeportes:         true,
		CanBookAlberca:          true,
		CanRentLocker:           true,
		CanApproveReservations:  true,
		CanViewAccountStatement: true,
	}
}

// AllowsCategory проверяет разрешение на бронирование категории
func (p *PermissionSet) AllowsCategory(category ServiceCategory) bool {
	switch category {
	case CategorySpa:
		return p.CanBookSpa
	case CategoryBarberia:
		return p.CanBookBarberia
	case CategoryDeportes:
		return p.CanBookDeportes
	case CategoryAlberca:
		return p.CanBookAlberca
	default:
		return false
	}
}

// HasHourWindow возвращает true, если профилю ограничены часы бронирования
func (p *PermissionSet) HasHourWindow() bool {
	return p.AllowedHoursStart != nil && p.AllowedHoursEnd != nil
}

// AllowsStartHour проверяет, что час начала попадает в окно [start, end).
// Сравнение идёт по часам, как в клиентском приложении: окно 07:00-20:00
// допускает начало в 19:59 и запрещает в 20:00.
func (p *PermissionSet) AllowsStartHour(start types.TimeString) (bool, error) {
	if !p.HasHourWindow() {
		return true, nil
	}

	startHour, err := start.Hour()
	if err != nil {
		return false, err
	}
	windowStart, err := p.AllowedHoursStart.Hour()
	if err != nil {
		return false, err
	}
	windowEnd, err := p.AllowedHoursEnd.Hour()
	if err != nil {
		return false, err
	}

	return startHour >= windowStart && startHour < windowEnd, nil
}

// Validate проверяет согласованность набора разрешений
func (p *PermissionSet) Validate() error {
	if (p.AllowedHoursStart == nil) != (p.AllowedHoursEnd == nil) {
		return fmt.Errorf("permissions: allowed hours window must set both bounds")
	}
	if p.AllowedHoursStart != nil {
		if err := p.AllowedHoursStart.Validate(); err != nil {
			return fmt.Errorf("permissions: allowed_hours_start: %w", err)
		}
		if err := p.AllowedHoursEnd.Validate(); err != nil {
			return fmt.Errorf("permissions: allowed_hours_end: %w", err)
		}
		if !p.AllowedHoursStart.IsBefore(*p.AllowedHoursEnd) {
			return fmt.Errorf("permissions: allowed hours window is empty")
		}
	}
	if p.MaxActiveReservations != nil && *p.MaxActiveReservations < 0 {
		return fmt.Errorf("permissions: max_active_reservations must be non-negative")
	}
	if p.SpendingLimitMonthly != nil && *p.SpendingLimitMonthly < 0 {
		return fmt.Errorf("permissions: spending_limit_monthly must be non-negative")
	}
	return nil
}
