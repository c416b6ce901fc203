package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/curl2make/internal/telemetry"
)

// cronParser — стандартные пятипольные выражения.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronExpr проверяет cron-выражение расписания очистки.
func ValidateCronExpr(expr string) error {
	if _, err := cronParser.Parse(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// Pruner удаляет записи журнала старше срока хранения.
type Pruner struct {
	store     Store
	retention time.Duration
	schedule  string
	logger    *slog.Logger

	cron *cron.Cron
	now  func() time.Time
}

// PrunerConfig — конфигурация Pruner.
type PrunerConfig struct {
	Store Store

	// Schedule — cron-выражение (AUDIT_PRUNE_CRON).
	Schedule string

	// RetentionDays — срок хранения в днях (AUDIT_RETENTION_DAYS).
	RetentionDays int

	Logger *slog.Logger
}

// NewPruner создаёт Pruner. Расписание проверяется сразу.
func NewPruner(cfg PrunerConfig) (*Pruner, error) {
	if err := ValidateCronExpr(cfg.Schedule); err != nil {
		return nil, err
	}
	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention must be positive, got %d days", cfg.RetentionDays)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pruner{
		store:     cfg.Store,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		schedule:  cfg.Schedule,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Cutoff возвращает границу: всё, что создано раньше, удаляется.
func (p *Pruner) Cutoff() time.Time {
	return p.now().UTC().Add(-p.retention)
}

// RunOnce выполняет одну очистку.
func (p *Pruner) RunOnce(ctx context.Context) (int64, error) {
	cutoff := p.Cutoff()

	deleted, err := p.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune conversions before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	telemetry.AuditRecordsTotal.WithLabelValues("pruned").Add(float64(deleted))
	p.logger.Info("pruned conversions", "cutoff", cutoff, "deleted", deleted)

	return deleted, nil
}

// Start запускает очистку по расписанию. Задачи используют ctx.
func (p *Pruner) Start(ctx context.Context) error {
	c := cron.New(cron.WithParser(cronParser), cron.WithLocation(time.UTC))

	entryID, err := c.AddFunc(p.schedule, func() {
		if _, err := p.RunOnce(ctx); err != nil {
			p.logger.Error("prune failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule pruner %q: %w", p.schedule, err)
	}

	p.cron = c
	p.cron.Start()
	p.logger.Info("pruner started",
		"schedule", p.schedule,
		"retention", p.retention,
		"next", p.cron.Entry(entryID).Next,
	)
	return nil
}

// Stop останавливает расписание и ждёт завершения текущей очистки.
func (p *Pruner) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.logger.Info("pruner stopped")
}
