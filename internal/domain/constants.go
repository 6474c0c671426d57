package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Scheduling constants
const (
	// AppointmentBufferMinutes буфер между записями к персоналу (подготовка места)
	AppointmentBufferMinutes = 10

	// ResourceSlotMinutes длительность слота для физических ресурсов (канчи и т.п.)
	ResourceSlotMinutes = 60

	// ApprovalTimeoutMinutes время жизни резервации в ожидании семейного одобрения
	ApprovalTimeoutMinutes = 120
)

// Default unit operating hours, применяются если у юнита нет расписания на день
const (
	DefaultUnitOpenTime  = "07:00"
	DefaultUnitCloseTime = "22:00"
)

// Причины системных отмен
const (
	ReasonApprovalTimeout     = "Timeout de aprobación familiar (2 horas)"
	ReasonMembershipSuspended = "Membresía suspendida por morosidad"
	ReasonProfileDeactivated  = "Perfil desactivado por el titular"
)

// ActiveStatuses статусы, при которых резервация удерживает слот.
// Используются в проверках пересечений и при подсчёте активных резерваций.
var ActiveStatuses = []ReservationStatus{
	StatusPendingApproval,
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses конечные статусы - переходы из них запрещены
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
	StatusExpired,
	StatusCancelledSystem,
}
