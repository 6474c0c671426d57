package create_reservation

import (
	"errors"
	"net/http"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
	"github.com/clubaltavista/CDA-ReservationService/internal/api/middleware"
	createReservation "github.com/clubaltavista/CDA-ReservationService/internal/usecase/create_reservation"
	evaluatePermission "github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
)

const (
	msgUnauthorized          = "se requiere autenticación"
	msgInvalidRequestBody    = "cuerpo de solicitud inválido"
	msgInvalidDate           = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidTime           = "formato de hora inválido, se espera HH:MM"
	msgSlotNotAvailable      = "el horario seleccionado ya no está disponible"
	msgProfileNotFound       = "perfil no encontrado"
	msgServiceNotFound       = "servicio no encontrado"
	msgResourceNotFound      = "recurso no encontrado"
	msgStaffNotAssigned      = "el empleado no ofrece este servicio"
	msgStaffNotWorking       = "el empleado no trabaja en el horario seleccionado"
	msgOutsideOperatingHours = "horario fuera del horario de operación del club"
	msgMembershipNotActive   = "la membresía no está activa"
	msgNotAuthorized         = "no tienes permiso para reservar por este perfil"
	msgDateInPast            = "la fecha de reserva no puede estar en el pasado"
	msgCategoryForbidden     = "categoría no permitida para este perfil"
	msgHoursForbidden        = "horario fuera de la ventana permitida para este perfil"
	msgActiveCapExceeded     = "límite de reservas activas alcanzado"
	msgSpendingExceeded      = "límite de gasto mensual excedido"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookedByID, ok := middleware.GetProfileID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing profile ID in request context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(bookedByID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if req.StartTime != "" && len(req.StartTime) != 5 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: profile_id=%d, date=%s, start=%s",
				useCaseReq.ProfileID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrProfileNotFound):
			h.logger.Warn("POST /reservations - Profile not found: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrResourceNotFound):
			h.logger.Warn("POST /reservations - Resource not found: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrStaffNotAssigned):
			h.logger.Warn("POST /reservations - Staff not assigned to service: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondBadRequest(w, msgStaffNotAssigned)

		case errors.Is(err, createReservation.ErrStaffNotWorking):
			h.logger.Warn("POST /reservations - Staff not working: profile_id=%d, date=%s, start=%s",
				useCaseReq.ProfileID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgStaffNotWorking)

		case errors.Is(err, createReservation.ErrOutsideOperatingHours):
			h.logger.Warn("POST /reservations - Outside operating hours: profile_id=%d, start=%s",
				useCaseReq.ProfileID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, createReservation.ErrMembershipNotActive):
			h.logger.Warn("POST /reservations - Membership not active: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondForbidden(w, msgMembershipNotActive)

		case errors.Is(err, createReservation.ErrNotAuthorized):
			h.logger.Warn("POST /reservations - Not authorized: booked_by=%d, profile_id=%d",
				bookedByID, useCaseReq.ProfileID)
			handlers.RespondForbidden(w, msgNotAuthorized)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in past: profile_id=%d, date=%s, start=%s",
				useCaseReq.ProfileID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, evaluatePermission.ErrCategoryForbidden):
			h.logger.Warn("POST /reservations - Category forbidden: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondForbidden(w, msgCategoryForbidden)

		case errors.Is(err, evaluatePermission.ErrHoursForbidden):
			h.logger.Warn("POST /reservations - Hours forbidden: profile_id=%d, start=%s",
				useCaseReq.ProfileID, req.StartTime)
			handlers.RespondForbidden(w, msgHoursForbidden)

		case errors.Is(err, evaluatePermission.ErrActiveCapExceeded):
			h.logger.Warn("POST /reservations - Active cap exceeded: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondForbidden(w, msgActiveCapExceeded)

		case errors.Is(err, evaluatePermission.ErrSpendingLimitExceeded):
			h.logger.Warn("POST /reservations - Spending limit exceeded: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondForbidden(w, msgSpendingExceeded)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: profile_id=%d, error=%v",
				useCaseReq.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, profile_id=%d, status=%s",
		result.ID, result.ProfileID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
