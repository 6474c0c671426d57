package paymentledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentledger client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentledger client: invalid response")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PaymentLedger (учёт начислений по бронированиям)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentLedger
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// spendingResponse сумма начислений профиля за период
type spendingResponse struct {
	Total float64 `json:"total"`
}

// SumChargesForProfileSince возвращает сумму начислений профиля (завершённые и
// ожидающие списания) начиная с указанной даты. Используется проверкой
// месячного лимита расходов.
func (c *Client) SumChargesForProfileSince(ctx context.Context, profileID int64, since time.Time) (float64, error) {
	url := fmt.Sprintf("%s/internal/charges/sum?profile_id=%d&since=%s&status=completada,pendiente",
		c.baseURL, profileID, since.Format("2006-01-02"))

	var raw spendingResponse
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return 0, err
	}
	return raw.Total, nil
}

// paidAmountsRequest запрос оплаченных сумм по списку резерваций
type paidAmountsRequest struct {
	ReservationIDs []int64 `json:"reservation_ids"`
}

// paidAmountsResponse суммы оплаченных платежей, ключ - ID резервации
type paidAmountsResponse struct {
	Amounts map[string]float64 `json:"amounts"`
}

// GetPaidAmounts возвращает суммы оплаченных платежей по резервациям.
// Резервации без оплаченного платежа в ответ не попадают.
// Используется калькулятором расчётов персонала.
func (c *Client) GetPaidAmounts(ctx context.Context, reservationIDs []int64) (map[int64]float64, error) {
	if len(reservationIDs) == 0 {
		return map[int64]float64{}, nil
	}

	url := fmt.Sprintf("%s/internal/payments/paid-amounts", c.baseURL)

	payload, err := json.Marshal(paidAmountsRequest{ReservationIDs: reservationIDs})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var raw paidAmountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	amounts := make(map[int64]float64, len(raw.Amounts))
	for key, amount := range raw.Amounts {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid reservation id %q", ErrInvalidResponse, key)
		}
		amounts[id] = amount
	}
	return amounts, nil
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

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
