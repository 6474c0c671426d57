package worker

import (
	"context"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/memberservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ExpireStaleApprovals(ctx context.Context, before time.Time) ([]int64, error)
	ListActiveMembershipIDs(ctx context.Context) ([]int64, error)
	CancelAllActiveForMembership(ctx context.Context, membershipID int64, reason string) ([]int64, error)
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMembership(ctx context.Context, membershipID int64) (*memberservice.Membership, error)
}

// NotifyServiceClient интерфейс клиента NotifyService
type NotifyServiceClient interface {
	Notify(ctx context.Context, n notifyservice.Notification) error
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
