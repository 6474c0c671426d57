package create_reservation

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Request модель запроса на создание резервации.
// Ровно одно из ServiceID/ResourceID должно быть задано;
// StaffID обязателен для услуг и запрещён для ресурсов.
type Request struct {
	BookedByID int64 // Профиль, выполняющий бронирование (из заголовка авторизации)
	ProfileID  int64 // Профиль, на которого бронируют (обычно совпадает с BookedByID)

	ServiceID  *int64
	ResourceID *int64
	StaffID    *int64

	Date      time.Time
	StartTime types.TimeString
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID               int64            `json:"id"`
	ProfileID        int64            `json:"profile_id"`
	MembershipID     int64            `json:"membership_id"`
	BookedByID       int64            `json:"booked_by_id"`
	ServiceID        *int64           `json:"service_id,omitempty"`
	ResourceID       *int64           `json:"resource_id,omitempty"`
	StaffID          *int64           `json:"staff_id,omitempty"`
	Date             time.Time        `json:"date"`
	StartTime        types.TimeString `json:"start_time"`
	EndTime          types.TimeString `json:"end_time"`
	DurationMinutes  int              `json:"duration_minutes"`
	Status           string           `json:"status"`
	RequiresApproval bool             `json:"requires_approval"`
	ServiceName      string           `json:"service_name"`
	ServicePrice     float64          `json:"service_price"`
	CreatedAt        time.Time        `json:"created_at"`
}
