package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"college-tracker/internal/common/aws"
	"college-tracker/internal/common/config"
	"college-tracker/internal/common/database"
	"college-tracker/internal/common/logger"
	"college-tracker/internal/common/observability"
	"college-tracker/internal/notify"
	"college-tracker/internal/storage"
	"college-tracker/internal/tracker"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting college tracker...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// Redis
	redisClient, err := database.NewRedis(cfg.Storage.Redis)
	if err != nil {
		zapLog.Fatal("redis init failed", zap.Error(err))
	}
	defer redisClient.Close()

	if err := retryWithBackoff(func() error {
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		defer pingCancel()
		return redisClient.Ping(pingCtx)
	}, 5, time.Second, zapLog, "redis ping"); err != nil {
		zapLog.Fatal("redis unavailable", zap.Error(err))
	}

	store := storage.NewRedisStore(redisClient.GetClient(), cfg.Storage.Key, cfg.Storage.BackupKey, log)

	// Notification channels
	var sesClient notify.SESService
	var snsClient notify.SNSService
	if cfg.Notifications.EmailEnabled {
		client, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses init failed", zap.Error(err))
		}
		sesClient = client
	}
	if cfg.Notifications.PushEnabled {
		client, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns init failed", zap.Error(err))
		}
		snsClient = client
	}
	notifier := notify.New(cfg.Notifications, sesClient, snsClient, log)

	svc, err := tracker.NewService(ctx, store, notifier, log)
	if err != nil {
		// Load failures degrade to an empty collection; surface and continue.
		zapLog.Warn("stored collection unavailable, starting empty", zap.Error(err))
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("metrics endpoint listening", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				zapLog.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	// Periodic due-reminder dispatch
	interval := time.Duration(cfg.Notifications.DispatchInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				count, err := svc.DispatchDueReminders(ctx, time.Now())
				status := "ok"
				if err != nil {
					status = "error"
					zapLog.Warn("reminder dispatch failed", zap.Error(err))
				}
				obs.RecordDispatched(ctx, count)
				obs.RecordDispatchDuration(ctx, time.Since(start), status)

				// Quiet hours may have ended since the last sweep.
				if flushed := notifier.Flush(ctx); flushed > 0 {
					zapLog.Info("flushed deferred notifications", zap.Int("count", flushed))
				}
			}
		}
	}()

	zapLog.Info("college tracker running",
		zap.Int("applications", len(svc.List())),
		zap.Duration("dispatchInterval", interval),
	)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("shutting down", zap.String("signal", sig.String()))
	cancel()
}
