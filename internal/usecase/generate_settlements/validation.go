package generate_settlements

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: period bounds are required", ErrInvalidInput)
	}
	if !req.PeriodStart.Before(req.PeriodEnd) {
		return fmt.Errorf("%w: periodStart must precede periodEnd", ErrInvalidPeriod)
	}
	return nil
}
