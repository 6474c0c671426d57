package generate_settlements

import (
	"context"

	generateSettlements "github.com/clubaltavista/CDA-ReservationService/internal/usecase/generate_settlements"
)

type GenerateSettlementsUseCase interface {
	Execute(ctx context.Context, req *generateSettlements.Request) (*generateSettlements.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
