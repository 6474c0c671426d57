package cancel_reservation

import (
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(actorID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		ActorID: actorID,
		Reason:  r.Reason,
	}
}
