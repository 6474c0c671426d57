package create_reservation

import (
	"context"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/memberservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MemberProfile, error)
	GetByMembershipID(ctx context.Context, membershipID int64) ([]*domain.MemberProfile, error)
}

// CatalogServiceClient интерфейс клиента CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetResource(ctx context.Context, resourceID int64) (*catalogservice.Resource, error)
	GetUnitOperatingHours(ctx context.Context, unitID int64, date time.Time) (*catalogservice.UnitHours, error)
}

// StaffServiceClient интерфейс клиента StaffService
type StaffServiceClient interface {
	GetSchedule(ctx context.Context, staffID int64, date time.Time) (*staffservice.StaffSchedule, error)
}

// MemberServiceClient интерфейс клиента MemberService
type MemberServiceClient interface {
	GetMembership(ctx context.Context, membershipID int64) (*memberservice.Membership, error)
}

// NotifyServiceClient интерфейс клиента NotifyService
type NotifyServiceClient interface {
	Notify(ctx context.Context, n notifyservice.Notification) error
}

// PermissionEvaluator интерфейс оценки делегированных разрешений
type PermissionEvaluator interface {
	Execute(ctx context.Context, req *evaluate_permission.Request) (*evaluate_permission.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
