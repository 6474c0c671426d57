package get_resource_slots

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	getResourceSlots "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_resource_slots"
)

// ResourceSlotsResponse HTTP response model
type ResourceSlotsResponse struct {
	Date            string   `json:"date"`
	ResourceID      int64    `json:"resourceId"`
	ResourceName    string   `json:"resourceName"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getResourceSlots.Response) *ResourceSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &ResourceSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ResourceID:      resp.ResourceID,
		ResourceName:    resp.ResourceName,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(profileID, resourceID int64, dateStr string) (*getResourceSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getResourceSlots.Request{
		ProfileID:  profileID,
		ResourceID: resourceID,
		Date:       date,
	}, nil
}
