package domain

import "github.com/clubaltavista/CDA-ReservationService/pkg/types"

// StaffSlots свободные слоты одного сотрудника на дату
type StaffSlots struct {
	StaffID   int64
	StaffName string
	Slots     []types.TimeString
}

// HasSlots возвращает true, если у сотрудника есть хотя бы один свободный слот
func (s *StaffSlots) HasSlots() bool {
	return len(s.Slots) > 0
}
