package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

func TestGenerateTimeGrid(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		interval int
		want     []string
	}{
		{
			// Услуга 45 минут + буфер 10: последний кандидат 09:55,
			// потому что 09:55+0:55 = 10:50 <= 11:00
			name:     "service with buffer",
			open:     "09:00",
			close:    "11:00",
			interval: 55,
			want:     []string{"09:00", "09:55"},
		},
		{
			name:     "hourly resource grid",
			open:     "07:00",
			close:    "10:00",
			interval: 60,
			want:     []string{"07:00", "08:00", "09:00"},
		},
		{
			name:     "interval does not fit",
			open:     "09:00",
			close:    "09:30",
			interval: 60,
			want:     []string{},
		},
		{
			name:     "empty window",
			open:     "10:00",
			close:    "10:00",
			interval: 30,
			want:     []string{},
		},
		{
			name:     "boundary slot fits exactly",
			open:     "21:00",
			close:    "22:00",
			interval: 60,
			want:     []string{"21:00"},
		},
		{
			name:     "midnight close boundary",
			open:     "22:00",
			close:    "24:00",
			interval: 60,
			want:     []string{"22:00", "23:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := GenerateTimeGrid(types.TimeString(tt.open), types.TimeString(tt.close), tt.interval)
			require.NoError(t, err)

			got := make([]string, len(grid))
			for i, slot := range grid {
				got[i] = slot.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateTimeGrid_InvalidOpen(t *testing.T) {
	_, err := GenerateTimeGrid(types.TimeString("25:00"), types.TimeString("10:00"), 30)
	assert.Error(t, err)
}

func TestGenerateTimeGrid_ZeroInterval(t *testing.T) {
	grid, err := GenerateTimeGrid(types.TimeString("09:00"), types.TimeString("18:00"), 0)
	require.NoError(t, err)
	assert.Empty(t, grid)
}

func TestGenerateTimeGrid_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		openMins := rapid.IntRange(0, 23*60).Draw(t, "open")
		windowLen := rapid.IntRange(0, 24*60-openMins).Draw(t, "window")
		interval := rapid.IntRange(1, 240).Draw(t, "interval")

		open := types.TimeString(formatMinutes(openMins))
		closeMins := openMins + windowLen
		var closeAt types.TimeString
		if closeMins == 24*60 {
			closeAt = types.TimeString("24:00")
		} else {
			closeAt = types.TimeString(formatMinutes(closeMins))
		}

		grid, err := GenerateTimeGrid(open, closeAt, interval)
		require.NoError(t, err)

		prev := -1
		for _, slot := range grid {
			mins, err := slot.Minutes()
			require.NoError(t, err)

			// Каждый слот начинается не раньше открытия
			assert.GreaterOrEqual(t, mins, openMins)
			// и целиком помещается до закрытия
			assert.LessOrEqual(t, mins+interval, closeMins)
			// Сетка строго возрастает с шагом interval
			if prev >= 0 {
				assert.Equal(t, prev+interval, mins)
			}
			prev = mins
		}
	})
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
