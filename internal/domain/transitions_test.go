package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name   string
		action TransitionAction
		from   ReservationStatus
		want   bool
	}{
		{"approve from pending", ActionApprove, StatusPendingApproval, true},
		{"approve from confirmed", ActionApprove, StatusConfirmed, false},
		{"reject from pending", ActionReject, StatusPendingApproval, true},
		{"reject from completed", ActionReject, StatusCompleted, false},
		{"expire from pending", ActionExpire, StatusPendingApproval, true},
		{"expire from confirmed", ActionExpire, StatusConfirmed, false},
		{"cancel from pending", ActionCancel, StatusPendingApproval, true},
		{"cancel from confirmed", ActionCancel, StatusConfirmed, true},
		{"cancel from in progress", ActionCancel, StatusInProgress, false},
		{"cancel from cancelled", ActionCancel, StatusCancelled, false},
		{"system cancel from confirmed", ActionCancelSystem, StatusConfirmed, true},
		{"system cancel from expired", ActionCancelSystem, StatusExpired, false},
		{"start from confirmed", ActionStart, StatusConfirmed, true},
		{"start from pending", ActionStart, StatusPendingApproval, false},
		{"complete from confirmed", ActionComplete, StatusConfirmed, true},
		{"complete from in progress", ActionComplete, StatusInProgress, true},
		{"complete from cancelled", ActionComplete, StatusCancelled, false},
		{"unknown action", TransitionAction("freeze"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTransition(tt.action, tt.from))
		})
	}
}

func TestValidTransition_TerminalStatusesAreFinal(t *testing.T) {
	actions := []TransitionAction{
		ActionApprove, ActionReject, ActionExpire,
		ActionCancel, ActionCancelSystem, ActionStart, ActionComplete,
	}

	for _, terminal := range TerminalStatuses {
		for _, action := range actions {
			assert.False(t, ValidTransition(action, terminal),
				"action %s must not be allowed from terminal status %s", action, terminal)
		}
	}
}

func TestTransitionTarget(t *testing.T) {
	tests := []struct {
		action TransitionAction
		want   ReservationStatus
	}{
		{ActionApprove, StatusConfirmed},
		{ActionReject, StatusRejected},
		{ActionExpire, StatusExpired},
		{ActionCancel, StatusCancelled},
		{ActionCancelSystem, StatusCancelledSystem},
		{ActionStart, StatusInProgress},
		{ActionComplete, StatusCompleted},
	}

	for _, tt := range tests {
		target, ok := TransitionTarget(tt.action)
		assert.True(t, ok)
		assert.Equal(t, tt.want, target)
	}

	_, ok := TransitionTarget(TransitionAction("freeze"))
	assert.False(t, ok)
}
