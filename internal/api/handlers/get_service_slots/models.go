package get_service_slots

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	getServiceSlots "github.com/clubaltavista/CDA-ReservationService/internal/usecase/get_service_slots"
)

// ServiceSlotsResponse HTTP response model
type ServiceSlotsResponse struct {
	Date            string       `json:"date"`
	ServiceID       int64        `json:"serviceId"`
	ServiceName     string       `json:"serviceName"`
	DurationMinutes int          `json:"durationMinutes"`
	Staff           []StaffSlots `json:"staff"`
}

// StaffSlots слоты одного сотрудника
type StaffSlots struct {
	StaffID   int64    `json:"staffId"`
	StaffName string   `json:"staffName"`
	Slots     []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getServiceSlots.Response) *ServiceSlotsResponse {
	staff := make([]StaffSlots, len(resp.Staff))
	for i, member := range resp.Staff {
		slots := make([]string, len(member.Slots))
		for j, slot := range member.Slots {
			slots[j] = slot.String()
		}
		staff[i] = StaffSlots{
			StaffID:   member.StaffID,
			StaffName: member.StaffName,
			Slots:     slots,
		}
	}

	return &ServiceSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Staff:           staff,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(profileID, serviceID int64, dateStr string) (*getServiceSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getServiceSlots.Request{
		ProfileID: profileID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
