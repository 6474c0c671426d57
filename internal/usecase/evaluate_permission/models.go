package evaluate_permission

import (
	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Request модель запроса оценки разрешений на бронирование
type Request struct {
	ProfileID int64                  // Профиль, от имени которого бронируют
	Category  domain.ServiceCategory // Категория услуги или ресурса
	StartTime types.TimeString       // Время начала предполагаемой резервации
	Price     float64                // Цена услуги (0 для бесплатных и ресурсов)
}

// Response результат оценки: бронирование разрешено, требуется ли
// семейное одобрение. При отказе usecase возвращает ошибку, не Response.
type Response struct {
	Allowed          bool
	RequiresApproval bool
}
