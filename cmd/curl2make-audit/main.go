// curl2make-audit — сохраняет события конверсий и чистит журнал.
//
// Компоненты:
//   - consumer очереди conversions.audit (если задан RABBITMQ_URL)
//   - pruner по расписанию AUDIT_PRUNE_CRON
//   - /healthz и /metrics на AUDIT_PORT
//
// Требует DB_URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/shaiso/curl2make/internal/audit"
	"github.com/shaiso/curl2make/internal/config"
	"github.com/shaiso/curl2make/internal/mq"
	"github.com/shaiso/curl2make/internal/repo"
	"github.com/shaiso/curl2make/internal/telemetry"
)

// auditPrefetch — сообщений в работе одновременно.
const auditPrefetch = 10

func main() {
	configFile := pflag.String("config", "", "Path to YAML config file")
	pruneNow := pflag.Bool("prune-now", false, "Run one prune pass and exit")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting curl2make-audit")

	if !cfg.HistoryEnabled() {
		logger.Error("DB_URL is required")
		os.Exit(1)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := repo.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repo.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	conversionRepo := repo.NewConversionRepo(pool)

	pruner, err := audit.NewPruner(audit.PrunerConfig{
		Store:         conversionRepo,
		Schedule:      cfg.AuditPruneCron,
		RetentionDays: cfg.AuditRetentionDays,
		Logger:        telemetry.WithComponent(logger, "pruner"),
	})
	if err != nil {
		logger.Error("invalid prune settings", "error", err)
		os.Exit(1)
	}

	if *pruneNow {
		if _, err := pruner.RunOnce(ctx); err != nil {
			logger.Error("prune failed", "error", err)
			os.Exit(1)
		}
		return
	}

	var wg sync.WaitGroup

	// RabbitMQ consumer
	var mqConn *mq.Connection
	if cfg.PublishingEnabled() {
		mqConn, err = mq.NewConnection(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer mqConn.Close()

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			os.Exit(1)
		}

		consumerLogger := telemetry.WithComponent(logger, "consumer")
		handler := audit.NewHandler(conversionRepo, consumerLogger)
		consumer := mq.NewConsumer(mqConn, consumerLogger, mq.ConsumerConfig{
			Queue:    mq.QueueConversionsAudit,
			Handler:  handler.Handle,
			Prefetch: auditPrefetch,
		})

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit consumer error", "error", err)
			}
		}()
	} else {
		logger.Warn("RABBITMQ_URL is not set, running pruner only")
	}

	if err := pruner.Start(ctx); err != nil {
		logger.Error("failed to start pruner", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, pingCancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer pingCancel()

		if err := pool.Ping(pingCtx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if mqConn != nil && !mqConn.IsConnected() {
			http.Error(w, "rabbitmq disconnected", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.AuditListenAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	pruner.Stop()
	wg.Wait()
	logger.Info("curl2make-audit stopped")
}
