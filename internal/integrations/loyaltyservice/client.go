package loyaltyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CRM программы лояльности
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CRM
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// RecordPaidVisit отправляет оплаченный визит в CRM
func (c *Client) RecordPaidVisit(ctx context.Context, visit VisitEvent) error {
	url := fmt.Sprintf("%s/internal/loyalty/visits", c.baseURL)

	payload, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal visit: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrClientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// RecordPaidVisitWithGracefulDegradation отправляет визит с graceful degradation.
// При недоступности CRM возвращает ErrServiceDegraded: оплата уже
// зафиксирована локально, и отказ CRM не должен ломать кассовую операцию.
func (c *Client) RecordPaidVisitWithGracefulDegradation(ctx context.Context, visit VisitEvent) error {
	c.log.Info("Recording paid visit for client_id=%d, appointment_id=%d", visit.ClientID, visit.AppointmentID)

	err := c.RecordPaidVisit(ctx, visit)
	if err != nil {
		// Неизвестный клиент - бизнес-ошибка, пробрасываем дальше
		if err == ErrClientNotFound {
			c.log.Info("Loyalty client not found: client_id=%d", visit.ClientID)
			return err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout и т.д.)
		// применяем graceful degradation
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("LoyaltyService unavailable, applying graceful degradation for client_id=%d: %v", visit.ClientID, err)
		return fmt.Errorf("%w: client_id=%d, error=%v", ErrServiceDegraded, visit.ClientID, err)
	}

	c.log.Info("Successfully recorded paid visit for client_id=%d", visit.ClientID)
	return nil
}
