package partnerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PartnerService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PartnerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetServicePoint получает снапшот сервисной точки: недельное
// расписание, список постов и менеджеров
func (c *Client) GetServicePoint(ctx context.Context, pointID int64) (*ServicePoint, error) {
	url := fmt.Sprintf("%s/internal/service-points/%d", c.baseURL, pointID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid point ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPointNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var point ServicePoint
	if err := json.NewDecoder(resp.Body).Decode(&point); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &point, nil
}

// GetServicePointWithGracefulDegradation получает точку с graceful degradation:
// при недоступности PartnerService возвращает ErrServiceDegraded, чтобы
// вызывающая сторона могла отдать данные из кэша
func (c *Client) GetServicePointWithGracefulDegradation(ctx context.Context, pointID int64) (*ServicePoint, error) {
	point, err := c.GetServicePoint(ctx, pointID)
	if err != nil {
		// Бизнес-ошибку пробрасываем как есть
		if err == ErrPointNotFound {
			c.log.Info("Service point id=%d not found", pointID)
			return nil, err
		}

		// Для остальных ошибок (недоступность, timeout, парсинг) применяем
		// graceful degradation
		c.log.Error("PartnerService unavailable for point id=%d: %v", pointID, err)
		return nil, fmt.Errorf("%w: point_id=%d, error=%v", ErrServiceDegraded, pointID, err)
	}

	return point, nil
}
