// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package main is the attendance service API. It receives Zoom webhook
// events, synchronizes participant reports for ended meetings into the
// attendance store, and serves read access to the stored records.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-attendance-service/cmd/attendance-api/platforms"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/handlers"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/messaging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Configure tracing before anything starts instrumented work.
	telemetryShutdown, err := setupTelemetry(ctx)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up telemetry")
		os.Exit(1)
	}

	// Initialize the Zoom platform integration. Missing credentials log a
	// warning rather than stopping the service.
	zoomPlatform := platforms.SetupZoom(platforms.NewPlatformConfigsFromEnv().Zoom)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value store for the service.
	attendanceRepository, err := setupAttendanceRepository(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up attendance store")
		return
	}

	// Initialize services
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	syncService := service.NewAttendanceSyncService(
		zoomPlatform.TokenProvider,
		zoomPlatform.ParticipantReporter,
		attendanceRepository,
		messageBuilder,
	)
	webhookService := service.NewZoomWebhookService(syncService, zoomPlatform.Validator)
	queryService := service.NewAttendanceQueryService(attendanceRepository)

	// Initialize handlers
	router := handlers.NewRouter(
		handlers.NewZoomWebhookHandler(webhookService),
		handlers.NewAttendanceHandler(queryService),
		handlers.NewHealthHandler(
			handlers.ReadinessCheck{Name: "nats", Ready: natsConn.IsConnected},
			handlers.ReadinessCheck{Name: "attendance store", Ready: attendanceRepository.IsReady},
		),
	)

	httpServer := setupHTTPServer(flags, router, &gracefulCloseWG)

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, telemetryShutdown, &gracefulCloseWG, cancel)
}

// gracefulShutdown drains in-flight work before the process exits: stop
// accepting HTTP requests, flush traces, and drain the NATS connection.
func gracefulShutdown(
	httpServer *http.Server,
	natsConn *nats.Conn,
	telemetryShutdown func(context.Context) error,
	gracefulCloseWG *sync.WaitGroup,
	cancel context.CancelFunc,
) {
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), natsShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if err := telemetryShutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Warn("error flushing telemetry")
	}

	cancel()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	// Give the NATS drain a moment to settle before exiting.
	time.Sleep(100 * time.Millisecond)
	gracefulCloseWG.Wait()
}
