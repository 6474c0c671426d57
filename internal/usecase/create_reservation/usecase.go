package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	catalogClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	memberClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/memberservice"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/notifyservice"
	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
	"github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// UseCase use case создания резервации.
//
// Порядок проверок: авторизация и членство -> цель бронирования ->
// делегированные разрешения -> внутри сериализуемой транзакции повторная
// проверка пересечений с блокировкой строк и вставка. Два конкурентных
// запроса на один слот не могут пройти оба.
type UseCase struct {
	reservationRepo ReservationRepository
	profileRepo     ProfileRepository
	catalogClient   CatalogServiceClient
	staffClient     StaffServiceClient
	memberClient    MemberServiceClient
	notifyClient    NotifyServiceClient
	permissions     PermissionEvaluator
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	profiles ProfileRepository,
	catalog CatalogServiceClient,
	staff StaffServiceClient,
	members MemberServiceClient,
	notify NotifyServiceClient,
	permissions PermissionEvaluator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservations,
		profileRepo:     profiles,
		catalogClient:   catalog,
		staffClient:     staff,
		memberClient:    members,
		notifyClient:    notify,
		permissions:     permissions,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// target собирает данные цели бронирования независимо от её вида
type target struct {
	unitID          int64
	category        domain.ServiceCategory
	name            string
	price           float64
	durationMinutes int
	// Интервал, который кандидат занимает при проверке пересечений.
	// Для услуг включает буфер подготовки.
	blockMinutes  int
	maxConcurrent *int
}

// Execute выполняет use case создания резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: booked_by=%d, profile=%d, date=%s, time=%s",
		req.BookedByID, req.ProfileID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.Date, req.StartTime.String(), now); err != nil {
		uc.logger.Warn("CreateReservation: date/time in the past")
		return nil, err
	}

	// 2. Профили: кто бронирует и на кого
	owner, err := uc.loadActiveProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	if req.BookedByID != req.ProfileID {
		actor, err := uc.loadActiveProfile(ctx, req.BookedByID)
		if err != nil {
			return nil, err
		}
		// За другого бронируют только titular/conyugue того же членства
		if actor.MembershipID != owner.MembershipID || !actor.CanActForFamily() {
			uc.logger.Warn("CreateReservation: profile=%d not authorized to book for profile=%d",
				req.BookedByID, req.ProfileID)
			return nil, ErrNotAuthorized
		}
	}

	// 3. Членство должно действовать
	membership, err := uc.memberClient.GetMembership(ctx, owner.MembershipID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMembershipNotFound) {
			uc.logger.Warn("CreateReservation: membership id=%d not found", owner.MembershipID)
			return nil, ErrMembershipNotActive
		}
		uc.logger.Error("CreateReservation: failed to get membership id=%d: %v", owner.MembershipID, err)
		return nil, fmt.Errorf("%w: failed to get membership: %v", ErrInternal, err)
	}
	if !membership.IsActive() {
		uc.logger.Warn("CreateReservation: membership id=%d status=%s", membership.ID, membership.Status)
		return nil, ErrMembershipNotActive
	}

	// 4. Цель бронирования
	var tgt *target
	if req.ServiceID != nil {
		tgt, err = uc.loadServiceTarget(ctx, req)
	} else {
		tgt, err = uc.loadResourceTarget(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	// 5. Делегированные разрешения владельца резервации
	evaluation, err := uc.permissions.Execute(ctx, &evaluate_permission.Request{
		ProfileID: req.ProfileID,
		Category:  tgt.category,
		StartTime: req.StartTime,
		Price:     tgt.price,
	})
	if err != nil {
		// Ошибки оценщика уже типизированы, пробрасываем как есть
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(tgt.durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}
	blockEnd, err := req.StartTime.AddMinutes(tgt.blockMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute block end: %v", ErrInternal, err)
	}

	status := domain.StatusConfirmed
	if evaluation.RequiresApproval {
		status = domain.StatusPendingApproval
	}

	var result *domain.Reservation

	// 6. Сериализуемая транзакция: повторная проверка пересечений + вставка
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные резервации цели на дату с блокировкой (FOR UPDATE)
		filter := domain.ReservationsFilter{
			Date:       &req.Date,
			ActiveOnly: true,
		}
		if req.ServiceID != nil {
			filter.StaffID = req.StaffID
		} else {
			filter.ResourceID = req.ResourceID
		}

		existing, err := uc.reservationRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get existing reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		for _, res := range existing {
			if res.Overlaps(req.StartTime, blockEnd) {
				uc.logger.Warn("CreateReservation: slot %s-%s conflicts with reservation id=%d",
					req.StartTime, blockEnd, res.ID)
				return ErrSlotNotAvailable
			}
		}

		// 6.2. Потолок параллельных записей услуги (интервал без буфера)
		if req.ServiceID != nil && tgt.maxConcurrent != nil {
			serviceFilter := domain.ReservationsFilter{
				ServiceID:  req.ServiceID,
				Date:       &req.Date,
				ActiveOnly: true,
			}
			serviceReservations, err := uc.reservationRepo.GetWithFilter(txCtx, serviceFilter)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get service reservations: %v", err)
				return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
			}

			count := 0
			for _, res := range serviceReservations {
				if res.Overlaps(req.StartTime, endTime) {
					count++
				}
			}
			if count >= *tgt.maxConcurrent {
				uc.logger.Warn("CreateReservation: service=%d capacity reached, %d/%d",
					*req.ServiceID, count, *tgt.maxConcurrent)
				return ErrSlotNotAvailable
			}
		}

		// 6.3. Вставка с денормализацией данных цели
		reservation := &domain.Reservation{
			ProfileID:        req.ProfileID,
			MembershipID:     owner.MembershipID,
			BookedByID:       req.BookedByID,
			UnitID:           tgt.unitID,
			ServiceID:        req.ServiceID,
			ResourceID:       req.ResourceID,
			StaffID:          req.StaffID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			EndTime:          endTime,
			DurationMinutes:  tgt.durationMinutes,
			Status:           status,
			RequiresApproval: evaluation.RequiresApproval,
			ServiceName:      tgt.name,
			ServicePrice:     tgt.price,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d status=%s", result.ID, result.Status)

	// 7. Уведомляем одобряющих (best-effort, вне транзакции)
	if result.Status == domain.StatusPendingApproval {
		uc.notifyApprovers(ctx, owner, result)
	}

	return toResponse(result), nil
}

// loadActiveProfile получает профиль и проверяет, что он активен
func (uc *UseCase) loadActiveProfile(ctx context.Context, id int64) (*domain.MemberProfile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("CreateReservation: profile id=%d not found", id)
			return nil, ErrProfileNotFound
		}
		uc.logger.Error("CreateReservation: failed to get profile id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsActive {
		uc.logger.Warn("CreateReservation: profile id=%d is deactivated", id)
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// loadServiceTarget загружает услугу и проверяет сотрудника и его рабочее окно
func (uc *UseCase) loadServiceTarget(ctx context.Context, req *Request) (*target, error) {
	service, err := uc.catalogClient.GetService(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", *req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	assigned := false
	for _, id := range service.StaffIDs {
		if id == *req.StaffID {
			assigned = true
			break
		}
	}
	if !assigned {
		uc.logger.Warn("CreateReservation: staff id=%d not assigned to service id=%d",
			*req.StaffID, *req.ServiceID)
		return nil, ErrStaffNotAssigned
	}

	blockMinutes := service.DurationMinutes + domain.AppointmentBufferMinutes

	// Рабочее окно сотрудника на дату: слот должен помещаться целиком
	schedule, err := uc.staffClient.GetSchedule(ctx, *req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get schedule staff=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}
	window := domain.ResolveDayWindow(schedule.Template, schedule.Override, req.Date)
	if window == nil {
		uc.logger.Warn("CreateReservation: staff id=%d not working on %s",
			*req.StaffID, req.Date.Format(domain.DateFormat))
		return nil, ErrStaffNotWorking
	}
	blockEnd, err := req.StartTime.AddMinutes(blockMinutes)
	if err != nil || req.StartTime.IsBefore(window.Start) || blockEnd.IsAfter(window.End) {
		uc.logger.Warn("CreateReservation: slot %s outside staff window %s-%s",
			req.StartTime, window.Start, window.End)
		return nil, ErrStaffNotWorking
	}

	if err := uc.validateUnitHours(ctx, service.UnitID, req, blockMinutes); err != nil {
		return nil, err
	}

	price := 0.0
	if service.Price != nil {
		price = *service.Price
	}

	return &target{
		unitID:          service.UnitID,
		category:        domain.ServiceCategory(service.Category),
		name:            service.Name,
		price:           price,
		durationMinutes: service.DurationMinutes,
		blockMinutes:    blockMinutes,
		maxConcurrent:   service.MaxConcurrent,
	}, nil
}

// loadResourceTarget загружает физический ресурс и проверяет часы юнита
func (uc *UseCase) loadResourceTarget(ctx context.Context, req *Request) (*target, error) {
	resource, err := uc.catalogClient.GetResource(ctx, *req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateReservation: resource id=%d not found", *req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get resource id=%d: %v", *req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if err := uc.validateUnitHours(ctx, resource.UnitID, req, domain.ResourceSlotMinutes); err != nil {
		return nil, err
	}

	return &target{
		unitID:          resource.UnitID,
		category:        domain.ServiceCategory(resource.Category),
		name:            resource.Name,
		price:           0,
		durationMinutes: domain.ResourceSlotMinutes,
		blockMinutes:    domain.ResourceSlotMinutes,
	}, nil
}

// validateUnitHours проверяет, что слот помещается в часы работы юнита
func (uc *UseCase) validateUnitHours(ctx context.Context, unitID int64, req *Request, blockMinutes int) error {
	hours, err := uc.catalogClient.GetUnitOperatingHours(ctx, unitID, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get unit hours unit=%d: %v", unitID, err)
		return fmt.Errorf("%w: failed to get unit hours: %v", ErrInternal, err)
	}

	open := types.TimeString(domain.DefaultUnitOpenTime)
	closeAt := types.TimeString(domain.DefaultUnitCloseTime)
	if hours != nil {
		open = types.TimeString(hours.Open)
		closeAt = types.TimeString(hours.Close)
	}

	end, err := req.StartTime.AddMinutes(blockMinutes)
	if err != nil || req.StartTime.IsBefore(open) || end.IsAfter(closeAt) {
		uc.logger.Warn("CreateReservation: slot %s outside unit hours %s-%s", req.StartTime, open, closeAt)
		return ErrOutsideOperatingHours
	}
	return nil
}

// notifyApprovers отправляет уведомления профилям членства с правом одобрения.
// Ошибки отправки логируются и не влияют на результат.
func (uc *UseCase) notifyApprovers(ctx context.Context, owner *domain.MemberProfile, res *domain.Reservation) {
	approvers, err := uc.profileRepo.GetByMembershipID(ctx, owner.MembershipID)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to load approvers for membership=%d: %v",
			owner.MembershipID, err)
		return
	}

	for _, p := range approvers {
		if p.ID == owner.ID || !p.IsActive || !p.Permissions.CanApproveReservations {
			continue
		}

		notification := notifyservice.Notification{
			ProfileID: p.ID,
			Kind:      notifyservice.KindApprovalRequested,
			Title:     "Reserva pendiente de aprobación",
			Body: fmt.Sprintf("%s solicita reservar %s el %s a las %s",
				owner.FullName(), res.ServiceName, res.Date.Format(domain.DateFormat), res.StartTime),
		}
		if err := uc.notifyClient.Notify(ctx, notification); err != nil {
			uc.logger.Warn("CreateReservation: failed to notify profile=%d: %v", p.ID, err)
		}
	}
}

// toResponse конвертирует доменную резервацию в ответ
func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:               res.ID,
		ProfileID:        res.ProfileID,
		MembershipID:     res.MembershipID,
		BookedByID:       res.BookedByID,
		ServiceID:        res.ServiceID,
		ResourceID:       res.ResourceID,
		StaffID:          res.StaffID,
		Date:             res.Date,
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		DurationMinutes:  res.DurationMinutes,
		Status:           string(res.Status),
		RequiresApproval: res.RequiresApproval,
		ServiceName:      res.ServiceName,
		ServicePrice:     res.ServicePrice,
		CreatedAt:        res.CreatedAt,
	}
}
