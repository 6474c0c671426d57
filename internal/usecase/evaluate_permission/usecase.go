package evaluate_permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	profileRepo "github.com/clubaltavista/CDA-ReservationService/internal/infra/storage/profile"
)

// UseCase use case оценки делегированных разрешений профиля на бронирование.
// Проверки независимы, порядок выбран для раннего выхода: категория и окно
// часов не ходят в БД, лимиты требуют подсчётов.
type UseCase struct {
	profileRepo     ProfileRepository
	reservationRepo ReservationRepository
	paymentClient   PaymentLedgerClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	profiles ProfileRepository,
	reservations ReservationRepository,
	payments PaymentLedgerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		profileRepo:     profiles,
		reservationRepo: reservations,
		paymentClient:   payments,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет оценку разрешений. Любая непройденная проверка
// возвращает ошибку - частичных результатов нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EvaluatePermission: profile=%d, category=%s, start=%s, price=%.2f",
		req.ProfileID, req.Category, req.StartTime, req.Price)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EvaluatePermission: validation failed: %v", err)
		return nil, err
	}

	// 1. Профиль должен существовать и быть активным
	profile, err := uc.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("EvaluatePermission: profile id=%d not found", req.ProfileID)
			return nil, ErrProfileNotFound
		}
		uc.logger.Error("EvaluatePermission: failed to get profile id=%d: %v", req.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}
	if !profile.IsActive {
		uc.logger.Warn("EvaluatePermission: profile id=%d is deactivated", req.ProfileID)
		return nil, ErrProfileNotFound
	}

	perms := profile.Permissions

	// 2. Категория
	if !perms.AllowsCategory(req.Category) {
		uc.logger.Warn("EvaluatePermission: profile=%d category=%s forbidden", req.ProfileID, req.Category)
		return nil, fmt.Errorf("%w: %s", ErrCategoryForbidden, req.Category)
	}

	// 3. Окно разрешённых часов
	allowed, err := perms.AllowsStartHour(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check hour window: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Warn("EvaluatePermission: profile=%d start=%s outside window %s-%s",
			req.ProfileID, req.StartTime, *perms.AllowedHoursStart, *perms.AllowedHoursEnd)
		return nil, ErrHoursForbidden
	}

	// 4. Лимит активных резерваций
	if perms.MaxActiveReservations != nil {
		count, err := uc.reservationRepo.CountActiveByProfile(ctx, req.ProfileID)
		if err != nil {
			uc.logger.Error("EvaluatePermission: failed to count active reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to count active reservations: %v", ErrInternal, err)
		}
		if count >= *perms.MaxActiveReservations {
			uc.logger.Warn("EvaluatePermission: profile=%d active=%d cap=%d",
				req.ProfileID, count, *perms.MaxActiveReservations)
			return nil, ErrActiveCapExceeded
		}
	}

	// 5. Месячный лимит расходов: накопленное с начала месяца + цена запроса
	if perms.SpendingLimitMonthly != nil && req.Price > 0 {
		now := uc.timeProvider.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

		accumulated, err := uc.paymentClient.SumChargesForProfileSince(ctx, req.ProfileID, monthStart)
		if err != nil {
			uc.logger.Error("EvaluatePermission: failed to sum charges: %v", err)
			return nil, fmt.Errorf("%w: failed to sum monthly charges: %v", ErrInternal, err)
		}

		if accumulated+req.Price > *perms.SpendingLimitMonthly {
			uc.logger.Warn("EvaluatePermission: profile=%d accumulated=%.2f price=%.2f limit=%.2f",
				req.ProfileID, accumulated, req.Price, *perms.SpendingLimitMonthly)
			return nil, ErrSpendingLimitExceeded
		}
	}

	uc.logger.Info("EvaluatePermission: profile=%d allowed, requires_approval=%v",
		req.ProfileID, perms.RequiresApproval)

	return &Response{
		Allowed:          true,
		RequiresApproval: perms.RequiresApproval,
	}, nil
}
