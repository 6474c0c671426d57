package catalogservice

// Service услуга персонала из каталога клуба
type Service struct {
	ID              int64    `json:"id"`
	UnitID          int64    `json:"unit_id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"` // spa | barberia | deportes | alberca
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	MaxConcurrent   *int     `json:"max_concurrent"` // null = без потолка параллельных записей
	IsActive        bool     `json:"is_active"`
	StaffIDs        []int64  `json:"staff_ids"`
}

// Resource физический ресурс клуба (канча, сала и т.п.)
type Resource struct {
	ID       int64  `json:"id"`
	UnitID   int64  `json:"unit_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"` // deportes | alberca
	IsActive bool   `json:"is_active"`
}

// UnitHours часы работы юнита на конкретную дату
type UnitHours struct {
	Open  string `json:"open"`  // "07:00"
	Close string `json:"close"` // "22:00"
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
