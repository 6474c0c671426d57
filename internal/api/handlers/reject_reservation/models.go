package reject_reservation

import (
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

// RejectReservationRequest HTTP request model
type RejectReservationRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RejectReservationRequest) ToServiceRequest(actorID int64) *models.RejectReservationRequest {
	return &models.RejectReservationRequest{
		ActorID: actorID,
		Reason:  r.Reason,
	}
}
