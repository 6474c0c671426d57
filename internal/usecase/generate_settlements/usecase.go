package generate_settlements

import (
	"context"
	"fmt"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	staffClient "github.com/clubaltavista/CDA-ReservationService/internal/integrations/staffservice"
)

// UseCase use case генерации расчётов с независимым персоналом за период.
//
// Две схемы:
//   - renta_fija: фиксированная рента за место, выручка остаётся сотруднику;
//   - comision: выплата = выручка * ставка, комиссия клуба = остаток.
//
// Генерация идемпотентна: сотрудник с расчётом за точно такой же период
// пропускается. Ошибка по одному сотруднику не прерывает остальных.
type UseCase struct {
	reservationRepo ReservationRepository
	settlementRepo  SettlementRepository
	staffClient     StaffServiceClient
	paymentClient   PaymentLedgerClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservations ReservationRepository,
	settlements SettlementRepository,
	staff StaffServiceClient,
	payments PaymentLedgerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservations,
		settlementRepo:  settlements,
		staffClient:     staff,
		paymentClient:   payments,
		logger:          logger,
	}
}

// Execute выполняет генерацию расчётов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSettlements: unit=%d, period=%s..%s",
		req.UnitID, req.PeriodStart.Format(domain.DateFormat), req.PeriodEnd.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSettlements: validation failed: %v", err)
		return nil, err
	}

	staff, err := uc.staffClient.ListIndependentStaff(ctx, req.UnitID)
	if err != nil {
		uc.logger.Error("GenerateSettlements: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list independent staff: %v", ErrInternal, err)
	}

	resp := &Response{Created: make([]*domain.StaffSettlement, 0, len(staff))}

	for _, member := range staff {
		settlement, err := uc.settleStaffMember(ctx, req, member)
		if err != nil {
			// Не прерываем расчёт остальных сотрудников
			uc.logger.Error("GenerateSettlements: staff=%d failed: %v", member.ID, err)
			resp.Skipped++
			continue
		}
		if settlement == nil {
			resp.Skipped++
			continue
		}
		resp.Created = append(resp.Created, settlement)
	}

	uc.logger.Info("GenerateSettlements: unit=%d created=%d skipped=%d",
		req.UnitID, len(resp.Created), resp.Skipped)

	return resp, nil
}

// settleStaffMember считает расчёт одного сотрудника.
// Возвращает (nil, nil), если расчёт не нужен: нет схемы, нет выручки
// или период уже рассчитан.
func (uc *UseCase) settleStaffMember(ctx context.Context, req *Request, member staffClient.StaffMember) (*domain.StaffSettlement, error) {
	if member.FixedRent == nil && member.CommissionRate == nil {
		uc.logger.Warn("GenerateSettlements: staff=%d has no financial scheme, skipping", member.ID)
		return nil, nil
	}

	exists, err := uc.settlementRepo.ExistsForStaffAndPeriod(ctx, member.ID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.logger.Info("GenerateSettlements: staff=%d already settled for period, skipping", member.ID)
		return nil, nil
	}

	// Фиксированная рента: выручка остаётся сотруднику, клуб получает ренту
	if member.FixedRent != nil {
		settlement := &domain.StaffSettlement{
			StaffID:        member.ID,
			PeriodStart:    req.PeriodStart,
			PeriodEnd:      req.PeriodEnd,
			Type:           domain.SettlementFixedRent,
			TotalServices:  0,
			GrossRevenue:   0,
			ClubCommission: *member.FixedRent,
			StaffPayout:    0,
			Status:         domain.SettlementPending,
		}
		return uc.settlementRepo.Create(ctx, settlement)
	}

	// Комиссионная схема: только завершённые резервации с оплаченным платежом
	completed, err := uc.reservationRepo.GetCompletedByStaffInPeriod(ctx, member.ID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(completed))
	for i, res := range completed {
		ids[i] = res.ID
	}

	paid, err := uc.paymentClient.GetPaidAmounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	var gross float64
	count := 0
	for _, res := range completed {
		amount, ok := paid[res.ID]
		if !ok {
			continue
		}
		gross += amount
		count++
	}

	if count == 0 {
		return nil, nil
	}

	payout := gross * *member.CommissionRate
	settlement := &domain.StaffSettlement{
		StaffID:        member.ID,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
		Type:           domain.SettlementCommission,
		TotalServices:  count,
		GrossRevenue:   gross,
		ClubCommission: gross - payout,
		StaffPayout:    payout,
		Status:         domain.SettlementPending,
	}
	return uc.settlementRepo.Create(ctx, settlement)
}
