package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
	reservationRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/reservation"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

// Service сервис жизненного цикла резерваций: чтение, отмена, одобрение,
// отклонение, завершение и системные отмены. Создание живёт в отдельном
// usecase из-за сериализуемой транзакции.
type Service struct {
	reservationRepo ReservationRepository
	profileRepo     ProfileRepository
	notifyClient    NotifyServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservations ReservationRepository,
	profiles ProfileRepository,
	notify NotifyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservations,
		profileRepo:     profiles,
		notifyClient:    notify,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID.
// Доступ: владелец резервации или titular/conyugue того же членства.
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for profile=%d", id, actorID)

	reservation, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkFamilyAccess(ctx, reservation, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for profile=%d to reservation id=%d", actorID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetProfileReservations получает историю резерваций профиля.
// Доступ: сам профиль или titular/conyugue того же членства.
func (s *Service) GetProfileReservations(ctx context.Context, req *models.GetProfileReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetProfileReservations: profile=%d, actor=%d", req.ProfileID, req.ActorID)

	owner, err := s.getProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if req.ActorID != req.ProfileID {
		actor, err := s.getProfile(ctx, req.ActorID)
		if err != nil {
			return nil, err
		}
		if actor.MembershipID != owner.MembershipID || !actor.CanActForFamily() {
			s.logger.Warn("GetProfileReservations: access denied for profile=%d", req.ActorID)
			return nil, ErrAccessDenied
		}
	}

	filter := domain.ReservationsFilter{
		ProfileID: &req.ProfileID,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
	}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetProfileReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProfileReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetProfileReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfileReservations: fetched %d reservations for profile=%d",
		len(reservations), req.ProfileID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPendingApprovals получает резервации членства, ожидающие одобрения.
// Доступ: профили с правом can_approve_reservations.
func (s *Service) GetPendingApprovals(ctx context.Context, actorID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPendingApprovals: actor=%d", actorID)

	actor, err := s.getProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Permissions.CanApproveReservations {
		s.logger.Warn("GetPendingApprovals: profile=%d has no approval permission", actorID)
		return nil, ErrAccessDenied
	}

	status := domain.StatusPendingApproval
	reservations, err := s.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
		MembershipID: &actor.MembershipID,
		Status:       &status,
	})
	if err != nil {
		s.logger.Error("GetPendingApprovals: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPendingApprovals - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет резервацию.
// Доступ: владелец или titular/conyugue того же членства.
// Из терминального статуса отмена запрещена.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by profile=%d", reservationID, req.ActorID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if err := s.checkFamilyAccess(ctx, reservation, req.ActorID); err != nil {
		s.logger.Warn("Cancel: access denied for profile=%d to reservation id=%d", req.ActorID, reservationID)
		return err
	}

	if !domain.ValidTransition(domain.ActionCancel, reservation.Status) {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s",
			reservationID, reservation.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, domain.StatusCancelled, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомляем владельца, если отменял не он
	if req.ActorID != reservation.ProfileID {
		s.notifyOwner(ctx, reservation, notifyservice.KindReservationCanceled,
			"Reserva cancelada",
			fmt.Sprintf("Tu reserva de %s el %s fue cancelada", reservation.ServiceName,
				reservation.Date.Format(domain.DateFormat)))
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Approve подтверждает резервацию, ожидающую семейного одобрения.
// Доступ: профиль с can_approve_reservations того же членства.
func (s *Service) Approve(ctx context.Context, reservationID int64, actorID int64) error {
	s.logger.Info("Approve: approving reservation id=%d by profile=%d", reservationID, actorID)

	reservation, actor, err := s.loadForApproval(ctx, reservationID, actorID)
	if err != nil {
		return err
	}

	if !domain.ValidTransition(domain.ActionApprove, reservation.Status) {
		s.logger.Warn("Approve: reservation id=%d not pending approval, status=%s",
			reservationID, reservation.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.Approve(ctx, reservationID, actor.ID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Approve: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	s.notifyOwner(ctx, reservation, notifyservice.KindReservationApproved,
		"Reserva aprobada",
		fmt.Sprintf("%s aprobó tu reserva de %s el %s", actor.FullName(),
			reservation.ServiceName, reservation.Date.Format(domain.DateFormat)))

	s.logger.Info("Approve: successfully approved reservation id=%d", reservationID)
	return nil
}

// Reject отклоняет резервацию, ожидающую семейного одобрения.
// Доступ: профиль с can_approve_reservations того же членства.
func (s *Service) Reject(ctx context.Context, reservationID int64, req *models.RejectReservationRequest) error {
	s.logger.Info("Reject: rejecting reservation id=%d by profile=%d", reservationID, req.ActorID)

	reservation, actor, err := s.loadForApproval(ctx, reservationID, req.ActorID)
	if err != nil {
		return err
	}

	if !domain.ValidTransition(domain.ActionReject, reservation.Status) {
		s.logger.Warn("Reject: reservation id=%d not pending approval, status=%s",
			reservationID, reservation.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, domain.StatusRejected, req.Reason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Reject: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.notifyOwner(ctx, reservation, notifyservice.KindReservationRejected,
		"Reserva rechazada",
		fmt.Sprintf("%s rechazó tu reserva de %s el %s", actor.FullName(),
			reservation.ServiceName, reservation.Date.Format(domain.DateFormat)))

	s.logger.Info("Reject: successfully rejected reservation id=%d", reservationID)
	return nil
}

// Complete завершает резервацию по окончании слота.
// Вызывается внутренним планировщиком, без проверки профиля.
func (s *Service) Complete(ctx context.Context, reservationID int64) error {
	s.logger.Info("Complete: completing reservation id=%d", reservationID)

	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return err
	}

	if !domain.ValidTransition(domain.ActionComplete, reservation.Status) {
		s.logger.Warn("Complete: reservation id=%d cannot be completed, status=%s",
			reservationID, reservation.Status)
		return ErrInvalidTransition
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusCompleted); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Complete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed reservation id=%d", reservationID)
	return nil
}

// CancelAllForProfile системно отменяет все активные резервации профиля.
// Вызывается при деактивации профиля титуляром. Возвращает число отменённых.
func (s *Service) CancelAllForProfile(ctx context.Context, profileID int64) (int, error) {
	s.logger.Info("CancelAllForProfile: cancelling active reservations for profile=%d", profileID)

	ids, err := s.reservationRepo.CancelAllActiveForProfile(ctx, profileID, domain.ReasonProfileDeactivated)
	if err != nil {
		s.logger.Error("CancelAllForProfile: repository error for profile=%d: %v", profileID, err)
		return 0, fmt.Errorf("%w: CancelAllForProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelAllForProfile: cancelled %d reservations for profile=%d", len(ids), profileID)
	return len(ids), nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return reservation, nil
}

func (s *Service) getProfile(ctx context.Context, id int64) (*domain.MemberProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("getProfile: profile id=%d not found", id)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("getProfile: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return profile, nil
}

// checkFamilyAccess проверяет, что профиль - владелец резервации
// или titular/conyugue того же членства
func (s *Service) checkFamilyAccess(ctx context.Context, reservation *domain.Reservation, actorID int64) error {
	if reservation.ProfileID == actorID || reservation.BookedByID == actorID {
		return nil
	}

	actor, err := s.getProfile(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.MembershipID != reservation.MembershipID || !actor.CanActForFamily() {
		return ErrAccessDenied
	}
	return nil
}

// loadForApproval загружает резервацию и проверяет право одобрения
func (s *Service) loadForApproval(ctx context.Context, reservationID, actorID int64) (*domain.Reservation, *domain.MemberProfile, error) {
	reservation, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}

	actor, err := s.getProfile(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	if actor.MembershipID != reservation.MembershipID || !actor.Permissions.CanApproveReservations {
		s.logger.Warn("loadForApproval: profile=%d cannot approve reservation id=%d", actorID, reservationID)
		return nil, nil, ErrAccessDenied
	}

	return reservation, actor, nil
}

// notifyOwner отправляет уведомление владельцу резервации (best-effort)
func (s *Service) notifyOwner(ctx context.Context, reservation *domain.Reservation, kind, title, body string) {
	notification := notifyservice.Notification{
		ProfileID: reservation.ProfileID,
		Kind:      kind,
		Title:     title,
		Body:      body,
	}
	if err := s.notifyClient.Notify(ctx, notification); err != nil {
		s.logger.Warn("notifyOwner: failed to notify profile=%d: %v", reservation.ProfileID, err)
	}
}
