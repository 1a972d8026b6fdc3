// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// AttendanceRepository defines the interface for attendance record storage.
// This interface can be implemented by different storage backends (NATS KV,
// MongoDB, etc.). Records are create-only: there is no update or delete path.
type AttendanceRepository interface {
	// Create persists a new attendance record. It returns false with a nil
	// error when a record for the same (meeting, participant, session) triple
	// already exists, so that redelivered webhook events do not produce
	// duplicates.
	Create(ctx context.Context, record *models.AttendanceRecord) (bool, error)

	// GetByMeeting returns all records persisted for one meeting.
	GetByMeeting(ctx context.Context, meetingID string) ([]*models.AttendanceRecord, error)

	// ListAll returns every persisted record. The search endpoints filter the
	// result in memory; this service does no query shaping beyond that.
	ListAll(ctx context.Context) ([]*models.AttendanceRecord, error)
}

// MessagePublisher publishes service events for downstream consumers.
type MessagePublisher interface {
	PublishAttendanceRecorded(ctx context.Context, msg models.AttendanceRecordedMessage) error
}
