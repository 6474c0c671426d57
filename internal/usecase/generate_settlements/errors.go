package generate_settlements

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном расчётном периоде
	ErrInvalidPeriod = errors.New("invalid settlement period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
