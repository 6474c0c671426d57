package create_reservation

import (
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	createReservation "github.com/clubaltavista/CDA-ReservationService/internal/usecase/create_reservation"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ProfileID  int64  `json:"profileId"` // на кого бронируют; 0 = на себя
	ServiceID  *int64 `json:"serviceId,omitempty"`
	ResourceID *int64 `json:"resourceId,omitempty"`
	StaffID    *int64 `json:"staffId,omitempty"`
	Date       string `json:"date"`      // "2026-09-15"
	StartTime  string `json:"startTime"` // "10:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64   `json:"id"`
	ProfileID        int64   `json:"profileId"`
	MembershipID     int64   `json:"membershipId"`
	BookedByID       int64   `json:"bookedById"`
	ServiceID        *int64  `json:"serviceId,omitempty"`
	ResourceID       *int64  `json:"resourceId,omitempty"`
	StaffID          *int64  `json:"staffId,omitempty"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	RequiresApproval bool    `json:"requiresApproval"`
	ServiceName      string  `json:"serviceName"`
	ServicePrice     float64 `json:"servicePrice"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(bookedByID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	profileID := r.ProfileID
	if profileID == 0 {
		profileID = bookedByID
	}

	return &createReservation.Request{
		BookedByID: bookedByID,
		ProfileID:  profileID,
		ServiceID:  r.ServiceID,
		ResourceID: r.ResourceID,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		ProfileID:        resp.ProfileID,
		MembershipID:     resp.MembershipID,
		BookedByID:       resp.BookedByID,
		ServiceID:        resp.ServiceID,
		ResourceID:       resp.ResourceID,
		StaffID:          resp.StaffID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		RequiresApproval: resp.RequiresApproval,
		ServiceName:      resp.ServiceName,
		ServicePrice:     resp.ServicePrice,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
