package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
)

// Sweeper фоновый воркер жизненного цикла резерваций. С фиксированным
// интервалом выполняет два прохода:
//   - переводит в expirada резервации, ожидающие одобрения дольше таймаута;
//   - опрашивает статусы членств с активными резервациями и каскадно
//     отменяет резервации приостановленных членств (cancelada_sistema).
//
// Внешние события отражаются в статусах с задержкой до одного интервала,
// мгновенной консистентности нет.
type Sweeper struct {
	reservationRepo ReservationRepository
	memberClient    MemberServiceClient
	notifyClient    NotifyServiceClient
	timeProvider    TimeProvider
	interval        time.Duration
	logger          Logger
}

// NewSweeper создает новый экземпляр воркера
func NewSweeper(
	reservations ReservationRepository,
	members MemberServiceClient,
	notify NotifyServiceClient,
	interval time.Duration,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		reservationRepo: reservations,
		memberClient:    members,
		notifyClient:    notify,
		timeProvider:    &RealTimeProvider{},
		interval:        interval,
		logger:          logger,
	}
}

// Run запускает цикл воркера. Блокирует до закрытия stopCh или отмены ctx.
func (s *Sweeper) Run(ctx context.Context, stopCh <-chan struct{}) {
	s.logger.Info("Sweeper: started, interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Первый проход сразу, не дожидаясь тика
	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-stopCh:
			s.logger.Info("Sweeper: stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Sweeper: context cancelled")
			return
		}
	}
}

// Sweep выполняет один проход. Ошибки логируются, проход продолжается.
func (s *Sweeper) Sweep(ctx context.Context) {
	if err := s.expireStaleApprovals(ctx); err != nil {
		s.logger.Error("Sweeper: expire pass failed: %v", err)
	}
	if err := s.cancelSuspendedMemberships(ctx); err != nil {
		s.logger.Error("Sweeper: suspension pass failed: %v", err)
	}
}

// expireStaleApprovals истекает резервации, ждущие одобрения дольше таймаута
func (s *Sweeper) expireStaleApprovals(ctx context.Context) error {
	cutoff := s.timeProvider.Now().Add(-time.Duration(domain.ApprovalTimeoutMinutes) * time.Minute)

	ids, err := s.reservationRepo.ExpireStaleApprovals(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("expire stale approvals: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	s.logger.Info("Sweeper: expired %d stale reservations", len(ids))

	for _, id := range ids {
		reservation, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			s.logger.Warn("Sweeper: failed to load expired reservation id=%d: %v", id, err)
			continue
		}
		s.notifyOwner(ctx, reservation.ProfileID, notifyservice.KindReservationExpired,
			"Reserva expirada",
			fmt.Sprintf("Tu reserva de %s el %s expiró sin aprobación familiar",
				reservation.ServiceName, reservation.Date.Format(domain.DateFormat)))
	}
	return nil
}

// cancelSuspendedMemberships опрашивает членства с активными резервациями
// и каскадно отменяет резервации приостановленных. Ошибка по одному
// членству не прерывает остальные.
func (s *Sweeper) cancelSuspendedMemberships(ctx context.Context) error {
	membershipIDs, err := s.reservationRepo.ListActiveMembershipIDs(ctx)
	if err != nil {
		return fmt.Errorf("list active memberships: %w", err)
	}

	for _, membershipID := range membershipIDs {
		membership, err := s.memberClient.GetMembership(ctx, membershipID)
		if err != nil {
			s.logger.Warn("Sweeper: failed to get membership id=%d: %v", membershipID, err)
			continue
		}
		if membership.IsActive() {
			continue
		}

		ids, err := s.reservationRepo.CancelAllActiveForMembership(ctx, membershipID, domain.ReasonMembershipSuspended)
		if err != nil {
			s.logger.Error("Sweeper: failed to cancel reservations for membership=%d: %v", membershipID, err)
			continue
		}

		s.logger.Info("Sweeper: membership=%d status=%s, cancelled %d reservations",
			membershipID, membership.Status, len(ids))

		for _, id := range ids {
			reservation, err := s.reservationRepo.GetByID(ctx, id)
			if err != nil {
				continue
			}
			s.notifyOwner(ctx, reservation.ProfileID, notifyservice.KindReservationCanceled,
				"Reserva cancelada",
				fmt.Sprintf("Tu reserva de %s el %s fue cancelada: %s",
					reservation.ServiceName, reservation.Date.Format(domain.DateFormat),
					domain.ReasonMembershipSuspended))
		}
	}
	return nil
}

// notifyOwner отправляет уведомление профилю (best-effort)
func (s *Sweeper) notifyOwner(ctx context.Context, profileID int64, kind, title, body string) {
	notification := notifyservice.Notification{
		ProfileID: profileID,
		Kind:      kind,
		Title:     title,
		Body:      body,
	}
	if err := s.notifyClient.Notify(ctx, notification); err != nil {
		s.logger.Warn("Sweeper: failed to notify profile=%d: %v", profileID, err)
	}
}
