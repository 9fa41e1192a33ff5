package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskwire/taskwire/pkg/api"
)

// Client представляет HTTP клиент облачного sync-сервиса
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// UploadSync загружает полный снимок локальных данных одним запросом
func (c *Client) UploadSync(ctx context.Context, accessToken string, payload api.SyncPayload) (*api.SyncUploadResponse, error) {
	var resp api.SyncUploadResponse
	err := c.doRequest(ctx, "POST", "/sync/upload", accessToken, payload, &resp)
	if err != nil {
		return nil, fmt.Errorf("sync upload request failed: %w", err)
	}
	return &resp, nil
}

// GetSyncStatus возвращает состояние серверной обработки загруженного снимка
func (c *Client) GetSyncStatus(ctx context.Context, accessToken string) (*api.SyncStatusResponse, error) {
	var resp api.SyncStatusResponse
	err := c.doRequest(ctx, "GET", "/sync/status", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("sync status request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос с bearer-авторизацией
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Не-2xx несет {error}; показываем серверный текст дословно
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
