package get_resource_slots

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Request модель запроса доступных слотов физического ресурса
type Request struct {
	ProfileID  int64     // ID профиля (для логирования, не влияет на результат)
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со слотами ресурса
type Response struct {
	Date            time.Time
	ResourceID      int64
	ResourceName    string
	DurationMinutes int
	Slots           []types.TimeString
}
