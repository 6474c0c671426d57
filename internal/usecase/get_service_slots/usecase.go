package get_service_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	catalogClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	staffClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// UseCase use case для получения доступных слотов услуги персонала.
//
// Сетка кандидатов строится с шагом "длительность + буфер подготовки":
// услуга 45 минут с буфером 10 даёт шаг 55 минут. Кандидат остаётся в сетке,
// только если целиком (вместе с буфером) помещается до закрытия.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogServiceClient
	staffClient     StaffServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalog CatalogServiceClient,
	staff StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogClient:   catalog,
		staffClient:     staff,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetServiceSlots: profile=%d, service=%d, date=%s",
		req.ProfileID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetServiceSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return nil, ErrInvalidDate
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetServiceSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetServiceSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Часы работы юнита на дату (дефолтные, если расписания нет)
	hours, err := uc.catalogClient.GetUnitOperatingHours(ctx, service.UnitID, req.Date)
	if err != nil {
		uc.logger.Error("GetServiceSlots: failed to get unit hours unit=%d: %v", service.UnitID, err)
		return nil, fmt.Errorf("%w: failed to get unit hours: %v", ErrInternal, err)
	}
	unit := unitWindow(hours)

	// 4. Активные резервации услуги на дату - для потолка параллельных записей
	serviceReservations, err := uc.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
		ServiceID:  &req.ServiceID,
		Date:       &req.Date,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetServiceSlots: failed to get service reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	step := service.DurationMinutes + domain.AppointmentBufferMinutes

	// 5. Слоты по каждому сотруднику услуги
	staffSlots := make([]domain.StaffSlots, 0, len(service.StaffIDs))
	for _, staffID := range service.StaffIDs {
		member, schedule, err := uc.loadStaff(ctx, staffID, req.Date)
		if err != nil {
			if errors.Is(err, staffClient.ErrStaffNotFound) {
				// Сотрудник уволен или деактивирован - пропускаем
				uc.logger.Warn("GetServiceSlots: staff id=%d not found, skipping", staffID)
				continue
			}
			return nil, err
		}

		window := domain.ResolveDayWindow(schedule.Template, schedule.Override, req.Date)
		effective := intersectWindows(unit, window)
		if effective == nil {
			// Сотрудник в этот день не работает или не пересекается с часами юнита
			continue
		}

		candidates, err := domain.GenerateTimeGrid(effective.Start, effective.End, step)
		if err != nil {
			uc.logger.Error("GetServiceSlots: failed to generate grid for staff=%d: %v", staffID, err)
			return nil, fmt.Errorf("%w: failed to generate time grid: %v", ErrInternal, err)
		}

		// Занятость сотрудника: любые его активные резервации на дату,
		// включая резервации других услуг
		staffReservations, err := uc.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
			StaffID:    &staffID,
			Date:       &req.Date,
			ActiveOnly: true,
		})
		if err != nil {
			uc.logger.Error("GetServiceSlots: failed to get staff reservations staff=%d: %v", staffID, err)
			return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		free := filterStaffConflicts(candidates, step, staffReservations, staffID)

		// Потолок параллельных записей общий на услугу
		withCapacity := make([]types.TimeString, 0, len(free))
		for _, slot := range free {
			if hasCapacity(slot, service.DurationMinutes, serviceReservations, service.ID, service.MaxConcurrent) {
				withCapacity = append(withCapacity, slot)
			}
		}

		slots := filterPastSlots(withCapacity, req.Date, now)
		if len(slots) == 0 {
			// Сотрудники без единого свободного слота в ответ не попадают
			continue
		}

		staffSlots = append(staffSlots, domain.StaffSlots{
			StaffID:   staffID,
			StaffName: member.FullName,
			Slots:     slots,
		})
	}

	uc.logger.Info("GetServiceSlots: service=%d, date=%s, staff_with_slots=%d",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(staffSlots))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		Staff:           staffSlots,
	}, nil
}

// loadStaff получает сотрудника и его расписание с переопределением на дату
func (uc *UseCase) loadStaff(ctx context.Context, staffID int64, date time.Time) (*staffClient.StaffMember, *staffClient.StaffSchedule, error) {
	member, err := uc.staffClient.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			return nil, nil, err
		}
		uc.logger.Error("GetServiceSlots: failed to get staff id=%d: %v", staffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	schedule, err := uc.staffClient.GetSchedule(ctx, staffID, date)
	if err != nil {
		uc.logger.Error("GetServiceSlots: failed to get schedule staff=%d: %v", staffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff schedule: %v", ErrInternal, err)
	}

	return member, schedule, nil
}
