package get_resource_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	catalogClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// UseCase use case для получения доступных слотов физического ресурса.
// Ресурсы бронируются часовыми блоками по сетке часов работы юнита,
// буфер подготовки к ресурсам не применяется.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalog CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogClient:   catalog,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов ресурса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetResourceSlots: profile=%d, resource=%d, date=%s",
		req.ProfileID, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetResourceSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return nil, ErrInvalidDate
	}

	// 2. Получаем ресурс из каталога
	resource, err := uc.catalogClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("GetResourceSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetResourceSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 3. Часы работы юнита на дату (дефолтные, если расписания нет)
	hours, err := uc.catalogClient.GetUnitOperatingHours(ctx, resource.UnitID, req.Date)
	if err != nil {
		uc.logger.Error("GetResourceSlots: failed to get unit hours unit=%d: %v", resource.UnitID, err)
		return nil, fmt.Errorf("%w: failed to get unit hours: %v", ErrInternal, err)
	}

	openTime := types.TimeString(domain.DefaultUnitOpenTime)
	closeTime := types.TimeString(domain.DefaultUnitCloseTime)
	if hours != nil {
		openTime = types.TimeString(hours.Open)
		closeTime = types.TimeString(hours.Close)
	}

	// 4. Часовая сетка по часам работы юнита
	candidates, err := domain.GenerateTimeGrid(openTime, closeTime, domain.ResourceSlotMinutes)
	if err != nil {
		uc.logger.Error("GetResourceSlots: failed to generate grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time grid: %v", ErrInternal, err)
	}

	// 5. Активные резервации ресурса на дату
	reservations, err := uc.reservationRepo.GetWithFilter(ctx, domain.ReservationsFilter{
		ResourceID: &req.ResourceID,
		Date:       &req.Date,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetResourceSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Убираем занятые и прошедшие слоты
	free := make([]types.TimeString, 0, len(candidates))
	for _, start := range candidates {
		end, err := start.AddMinutes(domain.ResourceSlotMinutes)
		if err != nil {
			continue
		}

		busy := false
		for _, res := range reservations {
			if res.Overlaps(start, end) {
				busy = true
				break
			}
		}

		if !busy {
			free = append(free, start)
		}
	}
	free = filterPastSlots(free, req.Date, now)

	uc.logger.Info("GetResourceSlots: resource=%d, date=%s, slots=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), len(free))

	return &Response{
		Date:            req.Date,
		ResourceID:      resource.ID,
		ResourceName:    resource.Name,
		DurationMinutes: domain.ResourceSlotMinutes,
		Slots:           free,
	}, nil
}

// filterPastSlots для сегодняшней даты убирает слоты, начинающиеся в прошлом
func filterPastSlots(candidates []types.TimeString, date, now time.Time) []types.TimeString {
	if !isSameDay(date, now) {
		return candidates
	}

	currentTime := types.NewTimeString(now)
	future := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if !slot.IsBefore(currentTime) {
			future = append(future, slot)
		}
	}
	return future
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
