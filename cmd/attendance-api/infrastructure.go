// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/store"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

const (
	natsConnectTimeout  = 10 * time.Second
	natsReconnectWait   = 2 * time.Second
	natsShutdownTimeout = 25 * time.Second
)

// setupNATS connects to the NATS server. The connection reconnects forever;
// a terminal close signals the shutdown channel so the process exits instead
// of serving without persistence.
func setupNATS(env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Timeout(natsConnectTimeout),
		nats.ReconnectWait(natsReconnectWait),
		nats.MaxReconnects(-1),
		nats.DrainTimeout(natsShutdownTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("NATS disconnected", logging.ErrKey, err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			if err := nc.LastError(); err != nil {
				slog.Error("NATS connection closed", logging.ErrKey, err, logging.PriorityCritical())
			}
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	slog.Info("connected to NATS", "url", env.NatsURL)
	return natsConn, nil
}

// setupAttendanceRepository creates (or binds to) the attendance records KV
// bucket and wraps it in the repository.
func setupAttendanceRepository(ctx context.Context, natsConn *nats.Conn) (*store.NatsAttendanceRepository, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  store.KVStoreNameAttendanceRecords,
		History: 1,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("attendance records KV bucket ready", "bucket", store.KVStoreNameAttendanceRecords)
	return store.NewNatsAttendanceRepository(kv), nil
}
