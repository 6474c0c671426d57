package get_resource_slots

import (
	"context"

	getResourceSlots "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_resource_slots"
)

type GetResourceSlotsUseCase interface {
	Execute(ctx context.Context, req *getResourceSlots.Request) (*getResourceSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
