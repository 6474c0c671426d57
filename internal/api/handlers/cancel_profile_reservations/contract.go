package cancel_profile_reservations

import (
	"context"
)

type ReservationService interface {
	CancelAllForProfile(ctx context.Context, profileID int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
