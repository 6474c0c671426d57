package get_pending_approvals

import (
	"errors"
	"net/http"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
	"github.com/clubaltavista/CDA-ReservationService/internal/api/middleware"
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations"
)

const (
	msgUnauthorized = "se requiere autenticación"
	msgForbidden    = "no tienes permiso para aprobar reservas"
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

// Handle GET /api/v1/reservations/pending-approvals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetProfileID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/pending-approvals - Missing profile ID in request context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetPendingApprovals(r.Context(), actorID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied), errors.Is(err, reservations.ErrProfileNotFound):
			h.logger.Warn("GET /reservations/pending-approvals - Access denied: profile_id=%d", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /reservations/pending-approvals - Failed to get pending approvals: profile_id=%d, error=%v",
				actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/pending-approvals - Retrieved successfully: profile_id=%d, count=%d",
		actorID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
