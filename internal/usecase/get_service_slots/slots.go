package get_service_slots

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/integrations/catalogservice"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// unitWindow превращает часы работы юнита в рабочее окно.
// Если расписания на день нет, действуют часы клуба по умолчанию.
func unitWindow(hours *catalogservice.UnitHours) domain.DayWindow {
	if hours == nil {
		return domain.DayWindow{
			Start: types.TimeString(domain.DefaultUnitOpenTime),
			End:   types.TimeString(domain.DefaultUnitCloseTime),
		}
	}
	return domain.DayWindow{
		Start: types.TimeString(hours.Open),
		End:   types.TimeString(hours.Close),
	}
}

// intersectWindows пересекает окно юнита с окном сотрудника.
// Возвращает nil, если пересечение пусто.
func intersectWindows(unit domain.DayWindow, staff *domain.DayWindow) *domain.DayWindow {
	if staff == nil {
		return nil
	}

	start := unit.Start
	if staff.Start.IsAfter(start) {
		start = staff.Start
	}
	end := unit.End
	if staff.End.IsBefore(end) {
		end = staff.End
	}

	if !start.IsBefore(end) {
		return nil
	}
	return &domain.DayWindow{Start: start, End: end}
}

// filterStaffConflicts убирает кандидатов, пересекающихся с активными
// резервациями сотрудника. Кандидат занимает интервал вместе с буфером
// подготовки - сотрудник не может принять следующего клиента раньше.
func filterStaffConflicts(
	candidates []types.TimeString,
	stepMinutes int,
	reservations []*domain.Reservation,
	staffID int64,
) []types.TimeString {
	free := make([]types.TimeString, 0, len(candidates))

	for _, start := range candidates {
		end, err := start.AddMinutes(stepMinutes)
		if err != nil {
			continue
		}

		busy := false
		for _, res := range reservations {
			if res.StaffID == nil || *res.StaffID != staffID {
				continue
			}
			if res.Overlaps(start, end) {
				busy = true
				break
			}
		}

		if !busy {
			free = append(free, start)
		}
	}

	return free
}

// hasCapacity проверяет потолок параллельных записей на услугу.
// Потолок общий на услугу, не на сотрудника.
func hasCapacity(
	start types.TimeString,
	durationMinutes int,
	reservations []*domain.Reservation,
	serviceID int64,
	maxConcurrent *int,
) bool {
	if maxConcurrent == nil {
		return true
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}

	count := 0
	for _, res := range reservations {
		if res.ServiceID == nil || *res.ServiceID != serviceID {
			continue
		}
		if res.Overlaps(start, end) {
			count++
		}
	}

	return count < *maxConcurrent
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
