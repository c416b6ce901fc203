// curl2make-api — HTTP сервис конвертера curl → Make.com blueprint.
//
// Маршруты:
//   - GET/POST /           — HTML форма
//   - POST /api/convert    — совместимый формат без версии
//   - POST /api/v1/convert — конверт {"data": ...}
//   - GET /api/v1/conversions — журнал (если задан DB_URL)
//   - /healthz, /metrics
//
// Журнал: с RABBITMQ_URL события публикуются в очередь,
// иначе при DB_URL пишутся в базу напрямую.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/shaiso/curl2make/internal/api"
	"github.com/shaiso/curl2make/internal/audit"
	"github.com/shaiso/curl2make/internal/config"
	"github.com/shaiso/curl2make/internal/mq"
	"github.com/shaiso/curl2make/internal/repo"
	"github.com/shaiso/curl2make/internal/telemetry"
)

var startTime = time.Now()

func main() {
	configFile := pflag.String("config", "", "Path to YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Инициализируем structured logging
	logger := telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting curl2make-api")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		recorder audit.Recorder = audit.NopRecorder{}
		history  api.HistoryStore
		mqConn   *mq.Connection
	)

	// PostgreSQL: журнал и история
	if cfg.HistoryEnabled() {
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
		logger.Info("connected to database")

		conversionRepo := repo.NewConversionRepo(pool)
		history = conversionRepo
		recorder = audit.NewStoreRecorder(conversionRepo)
	}

	// RabbitMQ: события уходят в curl2make-audit
	if cfg.PublishingEnabled() {
		mqConn, err = mq.NewConnection(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("RabbitMQ not available, events are not published", "error", err)
		} else {
			defer mqConn.Close()

			if err := mq.SetupTopology(ctx, mqConn); err != nil {
				logger.Warn("failed to setup topology", "error", err)
			}
			recorder = audit.NewPublisherRecorder(mq.NewPublisher(mqConn, logger), logger)
			logger.Info("RabbitMQ connected")
		}
	}

	handler := api.NewHandler(api.Config{
		Recorder: recorder,
		History:  history,
		Logger:   logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if mqConn != nil && !mqConn.IsConnected() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "rabbitmq disconnected")
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime).Round(time.Second))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
