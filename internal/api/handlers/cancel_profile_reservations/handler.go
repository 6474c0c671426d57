package cancel_profile_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
)

const (
	msgInvalidProfileID = "ID de perfil inválido"
)

// CancelProfileReservationsResponse HTTP response model
type CancelProfileReservationsResponse struct {
	CancelledCount int `json:"cancelledCount"`
}

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

// Handle POST /internal/profiles/{profileId}/cancel-reservations
// Внутренний эндпоинт, вызывается MemberService при деактивации профиля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	profileIDStr := vars["profileId"]

	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /internal/profiles/{id}/cancel-reservations - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	count, err := h.service.CancelAllForProfile(r.Context(), profileID)
	if err != nil {
		h.logger.Error("POST /internal/profiles/{id}/cancel-reservations - Failed to cancel reservations: profile_id=%d, error=%v",
			profileID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/profiles/{id}/cancel-reservations - Cancelled %d reservations: profile_id=%d",
		count, profileID)
	handlers.RespondJSON(w, http.StatusOK, CancelProfileReservationsResponse{
		CancelledCount: count,
	})
}
