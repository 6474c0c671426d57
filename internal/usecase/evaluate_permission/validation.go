package evaluate_permission

import (
	"fmt"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProfileID <= 0 {
		return fmt.Errorf("%w: profileID must be positive", ErrInvalidInput)
	}

	switch req.Category {
	case domain.CategorySpa, domain.CategoryBarberia, domain.CategoryDeportes, domain.CategoryAlberca:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}

	return nil
}
