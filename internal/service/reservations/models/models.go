package models

import (
	"errors"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену резервации
type CancelReservationRequest struct {
	ActorID int64  `json:"-"` // Из заголовка авторизации
	Reason  string `json:"reason"`
}

// RejectReservationRequest запрос на отклонение резервации
type RejectReservationRequest struct {
	ActorID int64  `json:"-"`
	Reason  string `json:"reason"`
}

// GetProfileReservationsRequest запрос истории резерваций профиля
type GetProfileReservationsRequest struct {
	ProfileID int64      `json:"-"`
	ActorID   int64      `json:"-"`
	Status    *string    `json:"status,omitempty"`
	FromDate  *time.Time `json:"fromDate,omitempty"`
	ToDate    *time.Time `json:"toDate,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID               int64  `json:"id"`
	ProfileID        int64  `json:"profileId"`
	MembershipID     int64  `json:"membershipId"`
	BookedByID       int64  `json:"bookedById"`
	ServiceID        *int64 `json:"serviceId,omitempty"`
	ResourceID       *int64 `json:"resourceId,omitempty"`
	StaffID          *int64 `json:"staffId,omitempty"`
	Date             string `json:"date"`      // "2026-03-12"
	StartTime        string `json:"startTime"` // "10:00"
	EndTime          string `json:"endTime"`
	DurationMinutes  int    `json:"durationMinutes"`
	Status           string `json:"status"`
	RequiresApproval bool   `json:"requiresApproval"`
	ApprovedByID     *int64 `json:"approvedById,omitempty"`

	// Денормализованные данные цели
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ProfileID:          r.ProfileID,
		MembershipID:       r.MembershipID,
		BookedByID:         r.BookedByID,
		ServiceID:          r.ServiceID,
		ResourceID:         r.ResourceID,
		StaffID:            r.StaffID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		RequiresApproval:   r.RequiresApproval,
		ApprovedByID:       r.ApprovedByID,
		ServiceName:        r.ServiceName,
		ServicePrice:       r.ServicePrice,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if converted := FromDomainReservation(reservation); converted != nil {
			resp.Reservations[i] = *converted
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.StatusPendingApproval,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRejected,
		domain.StatusExpired,
		domain.StatusCancelledSystem,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
