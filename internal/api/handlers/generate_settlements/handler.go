package generate_settlements

import (
	"errors"
	"net/http"

	"github.com/clubaltavista/CDA-ReservationService/internal/api/handlers"
	generateSettlements "github.com/clubaltavista/CDA-ReservationService/internal/usecase/generate_settlements"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidPeriod      = "período de liquidación inválido"
)

type Handler struct {
	useCase GenerateSettlementsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSettlementsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/settlements/generate
// Внутренний эндпоинт, вызывается административной панелью клуба
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateSettlementsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/settlements/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /internal/settlements/generate - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSettlements.ErrInvalidPeriod):
			h.logger.Warn("POST /internal/settlements/generate - Invalid period: unit_id=%d, start=%s, end=%s",
				req.UnitID, req.PeriodStart, req.PeriodEnd)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, generateSettlements.ErrInvalidInput):
			h.logger.Warn("POST /internal/settlements/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /internal/settlements/generate - Failed to generate settlements: unit_id=%d, error=%v",
				req.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /internal/settlements/generate - Settlements generated: unit_id=%d, created=%d, skipped=%d",
		req.UnitID, len(result.Created), result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, response)
}
