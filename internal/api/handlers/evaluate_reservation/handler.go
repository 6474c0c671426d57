package evaluate_reservation

import (
	"errors"
	"net/http"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
	"github.com/clubaltavista/CDA-ReservationService/internal/api/middleware"
	evaluatePermission "github.com/clubaltavista/CDA-ReservationService/internal/usecase/evaluate_permission"
)

const (
	msgInvalidBody     = "cuerpo de solicitud inválido"
	msgProfileNotFound = "perfil no encontrado"

	reasonCategoryForbidden = "categoría no permitida para este perfil"
	reasonHoursForbidden    = "horario fuera de la ventana permitida"
	reasonActiveCapExceeded = "límite de reservas activas alcanzado"
	reasonSpendingExceeded  = "límite de gasto mensual excedido"
)

type Handler struct {
	useCase EvaluatePermissionUseCase
	logger  Logger
}

func NewHandler(useCase EvaluatePermissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/evaluate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/evaluate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	authProfileID, _ := middleware.GetProfileID(r.Context())
	useCaseReq := req.ToUseCaseRequest(authProfileID)

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Отказы по разрешениям - штатный ответ пред-проверки, не ошибка HTTP
		switch {
		case errors.Is(err, evaluatePermission.ErrCategoryForbidden):
			h.respondDenied(w, useCaseReq.ProfileID, reasonCategoryForbidden)

		case errors.Is(err, evaluatePermission.ErrHoursForbidden):
			h.respondDenied(w, useCaseReq.ProfileID, reasonHoursForbidden)

		case errors.Is(err, evaluatePermission.ErrActiveCapExceeded):
			h.respondDenied(w, useCaseReq.ProfileID, reasonActiveCapExceeded)

		case errors.Is(err, evaluatePermission.ErrSpendingLimitExceeded):
			h.respondDenied(w, useCaseReq.ProfileID, reasonSpendingExceeded)

		case errors.Is(err, evaluatePermission.ErrProfileNotFound):
			h.logger.Warn("POST /reservations/evaluate - Profile not found: profile_id=%d", useCaseReq.ProfileID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, evaluatePermission.ErrInvalidInput):
			h.logger.Warn("POST /reservations/evaluate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations/evaluate - Evaluation failed: profile_id=%d, error=%v",
				useCaseReq.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/evaluate - Allowed: profile_id=%d, requires_approval=%v",
		useCaseReq.ProfileID, result.RequiresApproval)
	handlers.RespondJSON(w, http.StatusOK, EvaluateResponse{
		Allowed:          true,
		RequiresApproval: result.RequiresApproval,
	})
}

func (h *Handler) respondDenied(w http.ResponseWriter, profileID int64, reason string) {
	h.logger.Info("POST /reservations/evaluate - Denied: profile_id=%d, reason=%s", profileID, reason)
	handlers.RespondJSON(w, http.StatusOK, EvaluateResponse{
		Allowed: false,
		Reason:  reason,
	})
}
