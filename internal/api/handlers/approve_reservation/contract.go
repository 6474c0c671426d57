package approve_reservation

import (
	"context"
)

type ReservationService interface {
	Approve(ctx context.Context, reservationID int64, actorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
