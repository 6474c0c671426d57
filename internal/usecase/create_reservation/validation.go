package create_reservation

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookedByID <= 0 {
		return fmt.Errorf("%w: bookedByID must be positive", ErrInvalidInput)
	}
	if req.ProfileID <= 0 {
		return fmt.Errorf("%w: profileID must be positive", ErrInvalidInput)
	}

	hasService := req.ServiceID != nil
	hasResource := req.ResourceID != nil
	if hasService == hasResource {
		return fmt.Errorf("%w: exactly one of serviceID or resourceID is required", ErrInvalidInput)
	}

	if hasService {
		if *req.ServiceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if req.StaffID == nil || *req.StaffID <= 0 {
			return fmt.Errorf("%w: staffID is required for service reservations", ErrInvalidInput)
		}
	} else {
		if *req.ResourceID <= 0 {
			return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
		}
		if req.StaffID != nil {
			return fmt.Errorf("%w: staffID is not allowed for resource reservations", ErrInvalidInput)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateNotInPast проверяет, что дата и время не в прошлом
func validateNotInPast(date time.Time, start string, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	if dateOnly.Equal(nowOnly) && start <= now.Format("15:04") {
		return ErrInvalidDate
	}
	return nil
}
