package evaluate_reservation

import (
	"context"

	evaluatePermission "github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
)

type EvaluatePermissionUseCase interface {
	Execute(ctx context.Context, req *evaluatePermission.Request) (*evaluatePermission.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
