package get_profile_reservations

import (
	"net/url"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров.
// status, fromDate, toDate опциональны.
func ToServiceRequest(profileID, actorID int64, query url.Values) (*models.GetProfileReservationsRequest, error) {
	req := &models.GetProfileReservationsRequest{
		ProfileID: profileID,
		ActorID:   actorID,
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if fromStr := query.Get("fromDate"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.FromDate = &from
	}

	if toStr := query.Get("toDate"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.ToDate = &to
	}

	return req, nil
}
