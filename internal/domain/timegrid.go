package domain

import "github.com/clubaltavista/CDA-ReservationService/pkg/types"

// GenerateTimeGrid генерирует упорядоченные времена начала интервалов внутри
// рабочего окна. Интервал попадает в сетку, только если целиком помещается
// до закрытия: start + interval <= close. Чистая функция без состояния.
func GenerateTimeGrid(open, close types.TimeString, intervalMinutes int) ([]types.TimeString, error) {
	if err := open.Validate(); err != nil {
		return nil, err
	}
	// "24:00" допустима только как правая граница окна
	if close != "24:00" {
		if err := close.Validate(); err != nil {
			return nil, err
		}
	}
	if intervalMinutes <= 0 {
		return []types.TimeString{}, nil
	}

	grid := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		end, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
		if end.IsAfter(close) {
			break
		}

		grid = append(grid, current)

		current, err = current.AddMinutes(intervalMinutes)
		if err != nil {
			break
		}
	}

	return grid, nil
}
