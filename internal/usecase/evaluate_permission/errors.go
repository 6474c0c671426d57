package evaluate_permission

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден или неактивен
	ErrProfileNotFound = errors.New("profile not found")

	// ErrCategoryForbidden возвращается при запрете на категорию услуги
	ErrCategoryForbidden = errors.New("category not allowed for profile")

	// ErrHoursForbidden возвращается при выходе за разрешённое окно часов
	ErrHoursForbidden = errors.New("start time outside allowed hours")

	// ErrActiveCapExceeded возвращается при достижении лимита активных резерваций
	ErrActiveCapExceeded = errors.New("active reservations cap reached")

	// ErrSpendingLimitExceeded возвращается при превышении месячного лимита расходов
	ErrSpendingLimitExceeded = errors.New("monthly spending limit exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
