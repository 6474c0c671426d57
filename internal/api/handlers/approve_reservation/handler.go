package approve_reservation

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
	msgUnauthorized         = "se requiere autenticación"
	msgInvalidReservationID = "ID de reserva inválido"
	msgNotFound             = "reserva no encontrada"
	msgForbidden            = "no tienes permiso para aprobar reservas"
	msgCannotApprove        = "la reserva no está pendiente de aprobación"
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

// Handle PATCH /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetProfileID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/approve - Missing profile ID in request context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationIDStr := vars["reservationId"]

	reservationID, err := strconv.ParseInt(reservationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	err = h.service.Approve(r.Context(), reservationID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/approve - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrProfileNotFound):
			h.logger.Warn("PATCH /reservations/{id}/approve - Access denied: reservation_id=%d, profile_id=%d",
				reservationID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/approve - Not pending approval: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgCannotApprove)

		default:
			h.logger.Error("PATCH /reservations/{id}/approve - Failed to approve reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/approve - Reservation approved successfully: reservation_id=%d, profile_id=%d",
		reservationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
