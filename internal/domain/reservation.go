package domain

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPendingApproval ReservationStatus = "pendiente_aprobacion"
	StatusConfirmed       ReservationStatus = "confirmada"
	StatusInProgress      ReservationStatus = "en_curso"
	StatusCompleted       ReservationStatus = "completada"
	StatusCancelled       ReservationStatus = "cancelada"
	StatusRejected        ReservationStatus = "rechazada"
	StatusExpired         ReservationStatus = "expirada"
	StatusCancelledSystem ReservationStatus = "cancelada_sistema"
)

// Reservation represents a booked slot for a staff service or a physical resource
type Reservation struct {
	ID           int64
	ProfileID    int64
	MembershipID int64
	BookedByID   int64
	UnitID       int64

	// Ровно одно из двух: услуга персонала или физический ресурс
	ServiceID  *int64
	ResourceID *int64
	StaffID    *int64

	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status           ReservationStatus
	RequiresApproval bool
	ApprovedByID     *int64
	ApprovedAt       *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still holds its slot
func (r *Reservation) IsActive() bool {
	for _, s := range ActiveStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the reservation reached a final state
func (r *Reservation) IsTerminal() bool {
	return !r.IsActive()
}

// IsServiceReservation returns true for staff-delivered service reservations
func (r *Reservation) IsServiceReservation() bool {
	return r.ServiceID != nil
}

// IsResourceReservation returns true for physical resource reservations
func (r *Reservation) IsResourceReservation() bool {
	return r.ResourceID != nil
}

// ReservationsFilter фильтр для выборки резерваций
type ReservationsFilter struct {
	ProfileID    *int64
	MembershipID *int64
	StaffID      *int64
	ServiceID    *int64
	ResourceID   *int64
	Date         *time.Time         // Конкретная дата (для проверки пересечений)
	FromDate     *time.Time         // Нижняя граница даты (включительно)
	ToDate       *time.Time         // Верхняя граница даты (включительно)
	Status       *ReservationStatus // Фильтр по конкретному статусу
	ActiveOnly   bool               // Только статусы, удерживающие слот
	Limit        uint64             // 0 = без ограничения
}

// Overlaps проверяет пересечение резервации с полуинтервалом [start, end).
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.StartTime.IsBefore(end) && r.EndTime.IsAfter(start)
}
