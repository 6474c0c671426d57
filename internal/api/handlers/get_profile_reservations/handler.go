package get_profile_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
	"github.com/clubaltavista/CDA-ReservationService/internal/api/middleware"
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations"
)

const (
	msgUnauthorized     = "se requiere autenticación"
	msgInvalidProfileID = "ID de perfil inválido"
	msgInvalidDate      = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidStatus    = "estado de reserva inválido"
	msgProfileNotFound  = "perfil no encontrado"
	msgForbidden        = "acceso denegado"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/profiles/{profileId}/reservations
// Query params: status, fromDate, toDate (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetProfileID(r.Context())
	if !ok {
		h.logger.Warn("GET /profiles/{id}/reservations - Missing profile ID in request context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем profileId из URL
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/reservations - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	serviceReq, err := ToServiceRequest(profileID, actorID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /profiles/{id}/reservations - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetProfileReservations(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrProfileNotFound):
			h.logger.Warn("GET /profiles/{id}/reservations - Profile not found: profile_id=%d", profileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /profiles/{id}/reservations - Access denied: profile_id=%d, actor_id=%d",
				profileID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /profiles/{id}/reservations - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /profiles/{id}/reservations - Failed to get reservations: profile_id=%d, error=%v",
				profileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /profiles/{id}/reservations - Reservations retrieved successfully: profile_id=%d, count=%d",
		profileID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
