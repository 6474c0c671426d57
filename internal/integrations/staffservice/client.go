package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clubaltavista/CDA-ReservationService/internal/domain"
	"github.com/clubaltavista/CDA-ReservationService/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с StaffService (персонал и расписания)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// StaffSchedule расписание сотрудника: недельный шаблон плюс
// переопределение на запрошенную дату (если есть).
type StaffSchedule struct {
	Template domain.WeekSchedule
	Override *domain.ScheduleOverride
}

// weekdayIndex маппинг имен дней недели из ответа StaffService в time.Weekday
var weekdayIndex = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// GetStaffMember получает сотрудника по ID. Неактивный сотрудник считается не найденным.
func (c *Client) GetStaffMember(ctx context.Context, staffID int64) (*StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff/%d", c.baseURL, staffID)

	var member StaffMember
	if err := c.getJSON(ctx, url, &member); err != nil {
		return nil, err
	}

	if !member.IsActive {
		return nil, ErrStaffNotFound
	}
	return &member, nil
}

// GetSchedule получает расписание сотрудника с переопределением на дату
func (c *Client) GetSchedule(ctx context.Context, staffID int64, date time.Time) (*StaffSchedule, error) {
	url := fmt.Sprintf("%s/internal/staff/%d/schedule?date=%s",
		c.baseURL, staffID, date.Format("2006-01-02"))

	var raw scheduleResponse
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}

	schedule := &StaffSchedule{}
	for day, window := range raw.Week {
		idx, ok := weekdayIndex[day]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidResponse, day)
		}
		schedule.Template[idx] = &domain.DayWindow{
			Start: types.TimeString(window.Start),
			End:   types.TimeString(window.End),
		}
	}

	if raw.Override != nil {
		override := &domain.ScheduleOverride{
			Kind: domain.OverrideKind(raw.Override.Kind),
		}
		if raw.Override.Start != nil {
			s := types.TimeString(*raw.Override.Start)
			override.Start = &s
		}
		if raw.Override.End != nil {
			e := types.TimeString(*raw.Override.End)
			override.End = &e
		}
		schedule.Override = override
	}

	return schedule, nil
}

// ListIndependentStaff получает активных независимых сотрудников юнита.
// Используется калькулятором расчётов.
func (c *Client) ListIndependentStaff(ctx context.Context, unitID int64) ([]StaffMember, error) {
	url := fmt.Sprintf("%s/internal/staff?unit_id=%d&employment_type=%s&active=true",
		c.baseURL, unitID, EmploymentIndependent)

	var raw staffListResponse
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	return raw.Staff, nil
}

// getJSON выполняет GET запрос и декодирует ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrStaffNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
