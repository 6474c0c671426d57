package get_pending_approvals

import (
	"context"

	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	GetPendingApprovals(ctx context.Context, actorID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
