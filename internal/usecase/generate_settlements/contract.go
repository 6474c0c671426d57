package generate_settlements

import (
	"context"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetCompletedByStaffInPeriod(ctx context.Context, staffID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// SettlementRepository интерфейс репозитория расчётов
type SettlementRepository interface {
	Create(ctx context.Context, s *domain.StaffSettlement) (*domain.StaffSettlement, error)
	ExistsForStaffAndPeriod(ctx context.Context, staffID int64, periodStart, periodEnd time.Time) (bool, error)
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	ListIndependentStaff(ctx context.Context, unitID int64) ([]staffservice.StaffMember, error)
}

// PaymentLedgerClient интерфейс клиента PaymentLedger
type PaymentLedgerClient interface {
	GetPaidAmounts(ctx context.Context, reservationIDs []int64) (map[int64]float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
