package domain

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// DayWindow рабочее окно одного дня
type DayWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid проверяет, что окно задано корректно и не пусто
func (w *DayWindow) IsValid() bool {
	if w == nil {
		return false
	}
	if w.Start.Validate() != nil || w.End.Validate() != nil {
		return false
	}
	return w.Start.IsBefore(w.End)
}

// WeekSchedule недельный шаблон расписания: массив из 7 окон,
// индексированный time.Weekday (вс=0 ... сб=6). nil = день нерабочий.
type WeekSchedule [7]*DayWindow

// WindowFor возвращает окно на день недели указанной даты
func (s WeekSchedule) WindowFor(date time.Time) *DayWindow {
	return s[int(date.Weekday())]
}

// OverrideKind тип переопределения расписания на конкретную дату
type OverrideKind string

const (
	OverrideDayOff      OverrideKind = "dia_libre"
	OverrideVacation    OverrideKind = "vacaciones"
	OverrideCustomHours OverrideKind = "horario_especial"
)

// ScheduleOverride переопределение расписания персонала на конкретную дату
type ScheduleOverride struct {
	Kind  OverrideKind
	Start *types.TimeString // Только для horario_especial
	End   *types.TimeString
}

// ResolveDayWindow определяет рабочее окно сотрудника на дату:
// приоритет у переопределения (выходной/отпуск => нет окна, особый график =>
// окно из переопределения), иначе недельный шаблон. nil = не работает.
func ResolveDayWindow(template WeekSchedule, override *ScheduleOverride, date time.Time) *DayWindow {
	if override != nil {
		switch override.Kind {
		case OverrideDayOff, OverrideVacation:
			return nil
		case OverrideCustomHours:
			if override.Start == nil || override.End == nil {
				return nil
			}
			w := &DayWindow{Start: *override.Start, End: *override.End}
			if !w.IsValid() {
				return nil
			}
			return w
		}
	}

	w := template.WindowFor(date)
	if !w.IsValid() {
		return nil
	}
	return w
}
