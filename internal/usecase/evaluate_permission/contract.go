package evaluate_permission

import (
	"context"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MemberProfile, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	CountActiveByProfile(ctx context.Context, profileID int64) (int, error)
}

// PaymentLedgerClient интерфейс клиента PaymentLedger
type PaymentLedgerClient interface {
	SumChargesForProfileSince(ctx context.Context, profileID int64, since time.Time) (float64, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
