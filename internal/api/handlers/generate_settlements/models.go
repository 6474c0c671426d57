package generate_settlements

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	generateSettlements "github.com/clubaltavista/CDA-ReservationService/internal/usecase/generate_settlements"
)

// GenerateSettlementsRequest HTTP request model
type GenerateSettlementsRequest struct {
	UnitID      int64  `json:"unitId"`
	PeriodStart string `json:"periodStart"` // "2026-08-01"
	PeriodEnd   string `json:"periodEnd"`   // "2026-08-31"
}

// SettlementResponse модель одного расчёта
type SettlementResponse struct {
	ID             int64   `json:"id"`
	StaffID        int64   `json:"staffId"`
	PeriodStart    string  `json:"periodStart"`
	PeriodEnd      string  `json:"periodEnd"`
	Type           string  `json:"type"`
	TotalServices  int     `json:"totalServices"`
	GrossRevenue   float64 `json:"grossRevenue"`
	ClubCommission float64 `json:"clubCommission"`
	StaffPayout    float64 `json:"staffPayout"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
}

// GenerateSettlementsResponse HTTP response model
type GenerateSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
	Skipped     int                  `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSettlementsRequest) ToUseCaseRequest() (*generateSettlements.Request, error) {
	periodStart, err := time.Parse(domain.DateFormat, r.PeriodStart)
	if err != nil {
		return nil, err
	}

	periodEnd, err := time.Parse(domain.DateFormat, r.PeriodEnd)
	if err != nil {
		return nil, err
	}

	return &generateSettlements.Request{
		UnitID:      r.UnitID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSettlements.Response) *GenerateSettlementsResponse {
	settlements := make([]SettlementResponse, len(resp.Created))
	for i, settlement := range resp.Created {
		settlements[i] = SettlementResponse{
			ID:             settlement.ID,
			StaffID:        settlement.StaffID,
			PeriodStart:    settlement.PeriodStart.Format(domain.DateFormat),
			PeriodEnd:      settlement.PeriodEnd.Format(domain.DateFormat),
			Type:           string(settlement.Type),
			TotalServices:  settlement.TotalServices,
			GrossRevenue:   settlement.GrossRevenue,
			ClubCommission: settlement.ClubCommission,
			StaffPayout:    settlement.StaffPayout,
			Status:         string(settlement.Status),
			CreatedAt:      settlement.CreatedAt.Format(time.RFC3339),
		}
	}

	return &GenerateSettlementsResponse{
		Settlements: settlements,
		Skipped:     resp.Skipped,
	}
}
