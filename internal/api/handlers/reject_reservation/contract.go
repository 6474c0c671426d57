package reject_reservation

import (
	"context"

	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Reject(ctx context.Context, reservationID int64, req *models.RejectReservationRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
