package staffservice

// EmploymentType тип занятости сотрудника
type EmploymentType string

const (
	EmploymentEmployee    EmploymentType = "empleado"
	EmploymentIndependent EmploymentType = "independiente"
)

// StaffMember сотрудник клуба
type StaffMember struct {
	ID             int64          `json:"id"`
	UnitID         int64          `json:"unit_id"`
	FullName       string         `json:"full_name"`
	EmploymentType EmploymentType `json:"employment_type"`
	CommissionRate *float64       `json:"commission_rate"` // Доля клуба, 0..1
	FixedRent      *float64       `json:"fixed_rent"`      // Месячная рента за место
	IsActive       bool           `json:"is_active"`
}

// dayWindowDTO окно одного дня в ответе StaffService
type dayWindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// scheduleOverrideDTO переопределение расписания на дату
type scheduleOverrideDTO struct {
	Kind  string  `json:"kind"` // dia_libre | vacaciones | horario_especial
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// scheduleResponse ответ StaffService на запрос расписания:
// недельный шаблон по именам дней + переопределение на запрошенную дату.
type scheduleResponse struct {
	Week     map[string]dayWindowDTO `json:"week"`
	Override *scheduleOverrideDTO    `json:"override"`
}

// staffListResponse ответ на запрос списка сотрудников
type staffListResponse struct {
	Staff []StaffMember `json:"staff"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
