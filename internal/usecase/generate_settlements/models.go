package generate_settlements

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
)

// Request модель запроса генерации расчётов за период
type Request struct {
	UnitID      int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Response результат генерации: созданные расчёты и счётчик пропусков.
// Пропуски - сотрудники без финансовой схемы, без выручки за период
// или уже рассчитанные за этот же период.
type Response struct {
	Created []*domain.StaffSettlement
	Skipped int
}
