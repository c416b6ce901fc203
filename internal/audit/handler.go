package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shaiso/curl2make/internal/domain"
	"github.com/shaiso/curl2make/internal/mq"
	"github.com/shaiso/curl2make/internal/repo"
	"github.com/shaiso/curl2make/internal/telemetry"
)

// Handler сохраняет события conversion.completed из очереди conversions.audit.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler создаёт Handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Handle реализует mq.Handler.
//
// ID записи берётся из ID сообщения, поэтому повторная доставка
// не создаёт дубликат: ErrAlreadyExists считается успехом.
func (h *Handler) Handle(ctx context.Context, d *mq.Delivery) error {
	if d.Message.Type != mq.MessageTypeConversionCompleted {
		return mq.Permanent(fmt.Errorf("unexpected message type %q", d.Message.Type))
	}

	ev, err := mq.ParsePayload[domain.ConversionEvent](&d.Message)
	if err != nil {
		return mq.Permanent(err)
	}
	if err := Validate(ev); err != nil {
		telemetry.AuditRecordsTotal.WithLabelValues("rejected").Inc()
		return mq.Permanent(err)
	}

	rec := domain.NewConversionRecord(ev)
	if id, err := uuid.Parse(d.Message.ID); err == nil {
		rec.ID = id
	}

	err = h.store.Create(ctx, rec)
	switch {
	case err == nil:
		telemetry.AuditRecordsTotal.WithLabelValues("stored").Inc()
	case errors.Is(err, repo.ErrAlreadyExists):
		h.logger.Debug("conversion already recorded", "id", rec.ID)
	default:
		telemetry.AuditRecordsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("store conversion %s: %w", rec.ID, err)
	}

	h.logger.Debug("conversion recorded",
		"id", rec.ID,
		"request_id", ev.RequestID,
		"source", ev.Source,
		"status", ev.Status,
	)
	return nil
}
