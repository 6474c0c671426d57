package get_service_slots

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
)

// Request модель запроса доступных слотов услуги персонала
type Request struct {
	ProfileID int64     // ID профиля (для логирования, не влияет на результат)
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со слотами по каждому сотруднику
type Response struct {
	Date            time.Time
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	Staff           []domain.StaffSlots
}
