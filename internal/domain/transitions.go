package domain

// TransitionAction действие над жизненным циклом резервации
type TransitionAction string

const (
	ActionApprove      TransitionAction = "approve"
	ActionReject       TransitionAction = "reject"
	ActionCancel       TransitionAction = "cancel"
	ActionCancelSystem TransitionAction = "cancel_system"
	ActionExpire       TransitionAction = "expire"
	ActionStart        TransitionAction = "start"
	ActionComplete     TransitionAction = "complete"
)

// transitionMap действие -> статусы, из которых оно допустимо.
// Из терминальных статусов переходов нет.
var transitionMap = map[TransitionAction][]ReservationStatus{
	ActionApprove:      {StatusPendingApproval},
	ActionReject:       {StatusPendingApproval},
	ActionExpire:       {StatusPendingApproval},
	ActionCancel:       {StatusPendingApproval, StatusConfirmed},
	ActionCancelSystem: {StatusPendingApproval, StatusConfirmed},
	ActionStart:        {StatusConfirmed},
	ActionComplete:     {StatusConfirmed, StatusInProgress},
}

// transitionTarget действие -> целевой статус
var transitionTarget = map[TransitionAction]ReservationStatus{
	ActionApprove:      StatusConfirmed,
	ActionReject:       StatusRejected,
	ActionExpire:       StatusExpired,
	ActionCancel:       StatusCancelled,
	ActionCancelSystem: StatusCancelledSystem,
	ActionStart:        StatusInProgress,
	ActionComplete:     StatusCompleted,
}

// ValidTransition проверяет, допустимо ли действие из указанного статуса
func ValidTransition(action TransitionAction, from ReservationStatus) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}

// TransitionTarget возвращает статус, в который переводит действие
func TransitionTarget(action TransitionAction) (ReservationStatus, bool) {
	target, ok := transitionTarget[action]
	return target, ok
}
