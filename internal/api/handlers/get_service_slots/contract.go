package get_service_slots

import (
	"context"

	getServiceSlots "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_service_slots"
)

type GetServiceSlotsUseCase interface {
	Execute(ctx context.Context, req *getServiceSlots.Request) (*getServiceSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
