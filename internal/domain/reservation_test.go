package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

func TestReservation_Overlaps(t *testing.T) {
	reservation := &Reservation{
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical interval", "10:00", "11:00", true},
		{"contained interval", "10:15", "10:45", true},
		{"overlaps start", "09:30", "10:30", true},
		{"overlaps end", "10:30", "11:30", true},
		{"covers entirely", "09:00", "12:00", true},
		{"adjacent before", "09:00", "10:00", false},
		{"adjacent after", "11:00", "12:00", false},
		{"fully before", "08:00", "09:00", false},
		{"fully after", "12:00", "13:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reservation.Overlaps(types.TimeString(tt.start), types.TimeString(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	for _, status := range ActiveStatuses {
		r := &Reservation{Status: status}
		assert.True(t, r.IsActive(), "status %s must be active", status)
		assert.False(t, r.IsTerminal())
	}

	for _, status := range TerminalStatuses {
		r := &Reservation{Status: status}
		assert.False(t, r.IsActive(), "status %s must not be active", status)
		assert.True(t, r.IsTerminal())
	}
}

func TestReservation_TargetKind(t *testing.T) {
	serviceID := int64(7)
	resourceID := int64(3)

	service := &Reservation{ServiceID: &serviceID}
	assert.True(t, service.IsServiceReservation())
	assert.False(t, service.IsResourceReservation())

	resource := &Reservation{ResourceID: &resourceID}
	assert.False(t, resource.IsServiceReservation())
	assert.True(t, resource.IsResourceReservation())
}
