package evaluate_reservation

import (
	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	evaluatePermission "github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// EvaluateRequest HTTP request model
type EvaluateRequest struct {
	ProfileID int64   `json:"profileId"`
	Category  string  `json:"category"`
	StartTime string  `json:"startTime"`
	Price     float64 `json:"price"`
}

// EvaluateResponse HTTP response model. Отказ в разрешении - это
// штатный результат пред-проверки, а не ошибка: allowed=false + причина.
type EvaluateResponse struct {
	Allowed          bool   `json:"allowed"`
	RequiresApproval bool   `json:"requiresApproval"`
	Reason           string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case
func (r *EvaluateRequest) ToUseCaseRequest(defaultProfileID int64) *evaluatePermission.Request {
	profileID := r.ProfileID
	if profileID == 0 {
		profileID = defaultProfileID
	}

	return &evaluatePermission.Request{
		ProfileID: profileID,
		Category:  domain.ServiceCategory(r.Category),
		StartTime: types.TimeString(r.StartTime),
		Price:     r.Price,
	}
}
