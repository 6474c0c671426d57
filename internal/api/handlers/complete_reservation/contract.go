package complete_reservation

import (
	"context"
)

type ReservationService interface {
	Complete(ctx context.Context, reservationID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
