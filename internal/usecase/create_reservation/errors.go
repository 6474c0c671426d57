package create_reservation

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден или неактивен
	ErrProfileNotFound = errors.New("profile not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrResourceNotFound возвращается, когда ресурс не найден или неактивен
	ErrResourceNotFound = errors.New("resource not found")

	// ErrStaffNotAssigned возвращается, когда сотрудник не оказывает услугу
	ErrStaffNotAssigned = errors.New("staff member is not assigned to service")

	// ErrStaffNotWorking возвращается, когда слот вне рабочего окна сотрудника
	ErrStaffNotWorking = errors.New("staff member is not working at requested time")

	// ErrOutsideOperatingHours возвращается, когда слот вне часов работы юнита
	ErrOutsideOperatingHours = errors.New("requested time is outside operating hours")

	// ErrMembershipNotActive возвращается при приостановленном членстве
	ErrMembershipNotActive = errors.New("membership is not active")

	// ErrNotAuthorized возвращается при бронировании за чужой профиль без права
	ErrNotAuthorized = errors.New("not authorized to book for this profile")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidDate возвращается при дате или времени в прошлом
	ErrInvalidDate = errors.New("invalid reservation date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
