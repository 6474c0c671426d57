package get_profile_reservations

import (
	"context"

	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetProfileReservations(ctx context.Context, req *models.GetProfileReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
