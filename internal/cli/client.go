package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shaiso/curl2make/internal/domain"
)

// sourceHeader — канал конверсии для журнала сервера.
const sourceHeader = "X-Curl2make-Source"

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// ConvertResult — ответ POST /api/v1/convert.
type ConvertResult struct {
	Descriptor domain.RequestDescriptor `json:"descriptor"`
	Blueprint  domain.Blueprint         `json:"blueprint"`
}

// ConversionResponse — запись журнала из API.
type ConversionResponse struct {
	ID         string `json:"id"`
	RequestID  string `json:"request_id"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	Method     string `json:"method,omitempty"`
	URLHost    string `json:"url_host,omitempty"`
	ErrorCode  string `json:"error_code,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	OccurredAt string `json:"occurred_at"`
	CreatedAt  string `json:"created_at"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError — ошибка, которую вернул сервер.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("API error: HTTP %d", e.Status)
	}
	return e.Message
}

// --- Client ---

// Client — HTTP-клиент для curl2make API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Convert отправляет команду на сервер.
func (c *Client) Convert(ctx context.Context, command string) (*ConvertResult, error) {
	body := map[string]string{"curl_command": command}

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/convert", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkError(resp); err != nil {
		return nil, err
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var result ConvertResult
	if err := json.Unmarshal(dr.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode conversion: %w", err)
	}
	return &result, nil
}

// ListConversions возвращает последние записи журнала.
func (c *Client) ListConversions(ctx context.Context, limit int) ([]ConversionResponse, error) {
	path := "/api/v1/conversions"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkError(resp); err != nil {
		return nil, err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var records []ConversionResponse
	if err := json.Unmarshal(lr.Data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode conversions: %w", err)
	}
	return records, nil
}

// --- HTTP helpers ---

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(sourceHeader, string(domain.SourceCLI))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	return resp, nil
}

func checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
		apiErr.Code = er.Error.Code
		apiErr.Message = er.Error.Message
	}
	return apiErr
}
