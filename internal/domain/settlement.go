package domain

import "time"

// SettlementStatus статус выплаты персоналу
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "pendiente"
	SettlementPaid    SettlementStatus = "pagada"
)

// SettlementType схема расчёта с независимым персоналом
type SettlementType string

const (
	// SettlementCommission процент клуба с выручки
	SettlementCommission SettlementType = "comision"
	// SettlementFixedRent фиксированная рента за место, выручка остаётся персоналу
	SettlementFixedRent SettlementType = "renta_fija"
)

// StaffSettlement расчёт выплаты одному сотруднику за период.
// Создается калькулятором расчётов, никем больше не мутируется.
type StaffSettlement struct {
	ID          int64
	StaffID     int64
	PeriodStart time.Time
	PeriodEnd   time.Time
	Type        SettlementType

	TotalServices  int
	GrossRevenue   float64
	ClubCommission float64
	StaffPayout    float64

	Status    SettlementStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
