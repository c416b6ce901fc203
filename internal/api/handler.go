package api

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/curl2make/internal/audit"
	"github.com/shaiso/curl2make/internal/domain"
	"github.com/shaiso/curl2make/internal/engine"
	"github.com/shaiso/curl2make/internal/telemetry"
)

// errorCodeInternal — код для события, если ошибка не из таксономии парсера.
const errorCodeInternal = "INTERNAL_ERROR"

// HistoryStore — источник записей журнала для /api/v1/conversions.
type HistoryStore interface {
	List(ctx context.Context, limit int) ([]domain.ConversionRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ConversionRecord, error)
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	recorder audit.Recorder
	history  HistoryStore
	logger   *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	// Recorder — куда отправлять события конверсий. nil — NopRecorder.
	Recorder audit.Recorder

	// History — журнал для /api/v1/conversions. nil — история отключена (503).
	History HistoryStore

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		recorder: recorder,
		history:  cfg.History,
		logger:   logger,
	}
}

// convert выполняет конверсию и фиксирует событие (метрики + Recorder).
// Ошибка Recorder только логируется.
func (h *Handler) convert(ctx context.Context, source domain.ConversionSource, command string) (domain.Blueprint, *domain.RequestDescriptor, error) {
	start := time.Now()
	doc, desc, err := engine.Convert(command)
	elapsed := time.Since(start)

	ev := domain.ConversionEvent{
		RequestID:  RequestIDFromContext(ctx),
		Source:     source,
		Status:     domain.ConversionStatusSucceeded,
		DurationMs: elapsed.Milliseconds(),
		OccurredAt: start.UTC(),
	}
	if err != nil {
		ev.Status = domain.ConversionStatusFailed
		ev.ErrorCode = engine.ErrorCode(err)
		if ev.ErrorCode == "" {
			ev.ErrorCode = errorCodeInternal
		}
		ev.Error = err.Error()
	} else {
		ev.Method = desc.Method
		ev.URLHost = urlHost(desc.URL)
	}

	telemetry.ObserveConversion(source.String(), string(ev.Status), elapsed)

	log := telemetry.FromContext(ctx)
	if rerr := h.recorder.Record(ctx, ev); rerr != nil {
		log.Warn("failed to record conversion", "error", rerr)
	}

	if err != nil {
		log.Info("conversion failed", "source", source, "code", ev.ErrorCode, "error", err)
		return domain.Blueprint{}, nil, err
	}

	log.Debug("conversion succeeded", "source", source, "method", ev.Method, "host", ev.URLHost)
	return doc, desc, nil
}

// urlHost возвращает хост URL для журнала. Путь и query не сохраняются.
func urlHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
