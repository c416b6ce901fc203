package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/curl2make/internal/domain"
)

// maxBodyBytes — предел размера тела запроса на конверсию.
const maxBodyBytes = 1 << 20

// ConvertRequest — тело POST /api/convert и POST /api/v1/convert.
//
// Указатель отличает отсутствующее поле от пустой строки.
type ConvertRequest struct {
	CurlCommand *string `json:"curl_command"`
}

// LegacyConvertResponse — успешный ответ /api/convert.
type LegacyConvertResponse struct {
	Result domain.Blueprint `json:"result"`
}

// LegacyErrorResponse — ошибка /api/convert.
type LegacyErrorResponse struct {
	Error string `json:"error"`
}

// ConvertResponse — данные успешного ответа /api/v1/convert.
type ConvertResponse struct {
	Descriptor *domain.RequestDescriptor `json:"descriptor"`
	Blueprint  domain.Blueprint          `json:"blueprint"`
}

// ConversionResponse — запись журнала в ответе /api/v1/conversions.
type ConversionResponse struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	Method     string    `json:"method,omitempty"`
	URLHost    string    `json:"url_host,omitempty"`
	ErrorCode  string    `json:"error_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversionFromDomain конвертирует domain.ConversionRecord в ConversionResponse.
func ConversionFromDomain(r domain.ConversionRecord) ConversionResponse {
	return ConversionResponse{
		ID:         r.ID,
		RequestID:  r.RequestID,
		Source:     r.Source.String(),
		Status:     string(r.Status),
		Method:     r.Method,
		URLHost:    r.URLHost,
		ErrorCode:  r.ErrorCode,
		Error:      r.Error,
		DurationMs: r.DurationMs,
		OccurredAt: r.OccurredAt,
		CreatedAt:  r.CreatedAt,
	}
}
