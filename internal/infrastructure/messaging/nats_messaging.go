// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging publishes service events to the NATS server.
package messaging

import (
	"context"
	"log/slog"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// INatsConn is a NATS connection interface needed for the message builder.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds service event messages and sends them to the NATS
// server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	if !m.NatsConn.IsConnected() {
		err := domain.NewUnavailableError("NATS connection is not available")
		slog.ErrorContext(ctx, "skipping message publish", logging.ErrKey, err, "subject", subject)
		return err
	}

	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// PublishAttendanceRecorded publishes a notification that attendance records
// for a meeting have been persisted. The sync pipeline treats the publish as
// best-effort; consumers that need the records themselves read the KV bucket.
func (m *MessageBuilder) PublishAttendanceRecorded(ctx context.Context, msg models.AttendanceRecordedMessage) error {
	data, err := msgpack.Marshal(&msg)
	if err != nil {
		slog.ErrorContext(ctx, "error marshaling attendance recorded message", logging.ErrKey, err)
		return err
	}

	return m.sendMessage(ctx, models.AttendanceRecordedSubject, data)
}
