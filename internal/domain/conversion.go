package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConversionEvent — событие о завершённой конверсии для журнала аудита.
//
// Событие не содержит ни сгенерированного документа, ни значений
// заголовков и параметров: только метаданные запроса и результат.
type ConversionEvent struct {
	// RequestID — идентификатор HTTP запроса (или вызова CLI).
	RequestID uuid.UUID `json:"request_id"`

	// Source — откуда пришла команда: web, api, cli.
	Source ConversionSource `json:"source"`

	// Status — результат конверсии.
	Status ConversionStatus `json:"status"`

	// Method — метод из дескриптора (пусто при ошибке парсинга).
	Method string `json:"method,omitempty"`

	// URLHost — хост целевого URL без пути и query.
	URLHost string `json:"url_host,omitempty"`

	// ErrorCode — код ошибки (MISSING_URL, MALFORMED_INPUT).
	ErrorCode string `json:"error_code,omitempty"`

	// Error — текст ошибки для пользователя.
	Error string `json:"error,omitempty"`

	// DurationMs — длительность конверсии в миллисекундах.
	DurationMs int64 `json:"duration_ms"`

	// OccurredAt — время конверсии.
	OccurredAt time.Time `json:"occurred_at"`
}

// ConversionRecord — сохранённая запись журнала аудита.
type ConversionRecord struct {
	ID uuid.UUID `json:"id"`
	ConversionEvent
	CreatedAt time.Time `json:"created_at"`
}

// NewConversionRecord создаёт запись из события.
func NewConversionRecord(ev ConversionEvent) *ConversionRecord {
	return &ConversionRecord{
		ID:              uuid.New(),
		ConversionEvent: ev,
		CreatedAt:       time.Now().UTC(),
	}
}
