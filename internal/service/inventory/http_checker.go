package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/pedidos/internal/domain"
)

const (
	defaultRequestTimeout = 3 * time.Second
	checkPath             = "/inventory/check-availability"
)

// HTTPChecker опрашивает внешний складской сервис по HTTP.
// Контракт: POST списка позиций, в ответ булево значение доступности.
type HTTPChecker struct {
	baseURL string
	client  *http.Client
	logger  *log.Entry
}

type checkItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// NewHTTPChecker создаёт клиент складского сервиса. client опционален.
func NewHTTPChecker(baseURL string, client *http.Client, logger *log.Entry) *HTTPChecker {
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	if logger == nil {
		logger = log.WithField("component", "inventory-checker")
	}
	return &HTTPChecker{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// CheckAvailability отправляет позиции заказа складскому сервису.
// Любая ошибка транспорта или не-2xx ответ означает недоступность стока.
func (c *HTTPChecker) CheckAvailability(ctx context.Context, items []domain.OrderItem) (bool, error) {
	if len(items) == 0 {
		return true, nil
	}

	payload := make([]checkItem, 0, len(items))
	for _, item := range items {
		payload = append(payload, checkItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal availability request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build availability request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("inventory service is unreachable")
		return false, fmt.Errorf("call inventory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return false, fmt.Errorf("inventory service returned status %d", resp.StatusCode)
	}

	var available bool
	if err := json.NewDecoder(resp.Body).Decode(&available); err != nil {
		return false, fmt.Errorf("decode availability response: %w", err)
	}

	return available, nil
}

var _ domain.InventoryChecker = (*HTTPChecker)(nil)
