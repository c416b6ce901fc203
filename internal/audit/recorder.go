package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/shaiso/curl2make/internal/domain"
	"github.com/shaiso/curl2make/internal/telemetry"
)

// Recorder фиксирует событие конверсии.
//
// Ошибка Recorder никогда не влияет на ответ пользователю:
// вызывающий код только логирует её.
type Recorder interface {
	Record(ctx context.Context, ev domain.ConversionEvent) error
}

// Store — хранилище журнала. Реализуется repo.ConversionRepo.
type Store interface {
	Create(ctx context.Context, rec *domain.ConversionRecord) error
	List(ctx context.Context, limit int) ([]domain.ConversionRecord, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventPublisher публикует события в очередь. Реализуется mq.Publisher.
type EventPublisher interface {
	PublishConversionCompleted(ctx context.Context, ev domain.ConversionEvent) error
}

// NopRecorder ничего не записывает.
type NopRecorder struct{}

// Record реализует Recorder.
func (NopRecorder) Record(context.Context, domain.ConversionEvent) error { return nil }

// StoreRecorder пишет событие прямо в Store.
type StoreRecorder struct {
	store Store
}

// NewStoreRecorder создаёт StoreRecorder.
func NewStoreRecorder(store Store) *StoreRecorder {
	return &StoreRecorder{store: store}
}

// Record валидирует событие и сохраняет его.
func (r *StoreRecorder) Record(ctx context.Context, ev domain.ConversionEvent) error {
	if err := Validate(ev); err != nil {
		return err
	}
	if err := r.store.Create(ctx, domain.NewConversionRecord(ev)); err != nil {
		telemetry.AuditRecordsTotal.WithLabelValues("failed").Inc()
		return err
	}
	telemetry.AuditRecordsTotal.WithLabelValues("stored").Inc()
	return nil
}

// PublisherRecorder отправляет событие в RabbitMQ.
// Запись в Store делает audit consumer.
type PublisherRecorder struct {
	publisher EventPublisher
	logger    *slog.Logger
}

// NewPublisherRecorder создаёт PublisherRecorder.
func NewPublisherRecorder(publisher EventPublisher, logger *slog.Logger) *PublisherRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublisherRecorder{publisher: publisher, logger: logger}
}

// Record реализует Recorder.
func (r *PublisherRecorder) Record(ctx context.Context, ev domain.ConversionEvent) error {
	if err := Validate(ev); err != nil {
		return err
	}
	if err := r.publisher.PublishConversionCompleted(ctx, ev); err != nil {
		r.logger.Warn("failed to publish conversion event",
			"request_id", ev.RequestID,
			"error", err,
		)
		return err
	}
	return nil
}

// Validate проверяет обязательные поля события.
func Validate(ev domain.ConversionEvent) error {
	if !ev.Status.IsValid() {
		return invalid("unknown status %q", ev.Status)
	}
	switch ev.Source {
	case domain.SourceWeb, domain.SourceAPI, domain.SourceCLI:
	default:
		return invalid("unknown source %q", ev.Source)
	}
	if ev.OccurredAt.IsZero() {
		return invalid("occurred_at is required")
	}
	if ev.DurationMs < 0 {
		return invalid("negative duration")
	}
	if ev.Status == domain.ConversionStatusFailed && ev.ErrorCode == "" {
		return invalid("failed event without error code")
	}
	return nil
}
