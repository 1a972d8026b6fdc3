// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// NatsAttendanceRepository is the NATS KV store repository for attendance
// records.
type NatsAttendanceRepository struct {
	*NatsBaseRepository[models.AttendanceRecord]
	keyBuilder *KeyBuilder
}

// NewNatsAttendanceRepository creates a new NATS KV store repository for
// attendance records.
func NewNatsAttendanceRepository(records INatsKeyValue) *NatsAttendanceRepository {
	return &NatsAttendanceRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.AttendanceRecord](records, "attendance record"),
		keyBuilder:         NewKeyBuilder(),
	}
}

// Create persists a new attendance record. The key is derived from the
// (meeting, participant, join time) triple and the write is create-if-absent,
// so a redelivered webhook event does not overwrite or duplicate the record;
// in that case Create returns false with a nil error.
func (s *NatsAttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	key := s.keyBuilder.RecordKey(record.MeetingID, record.Name, record.JoinTime)

	created, err := s.NatsBaseRepository.Create(ctx, key, record)
	if err != nil {
		return false, err
	}
	if !created {
		slog.DebugContext(ctx, "attendance record already exists, skipping write",
			"meeting_id", record.MeetingID,
			"participant", record.Name,
		)
	}

	return created, nil
}

// GetByMeeting returns all records persisted for one meeting. Keys are
// filtered on the decoded meeting segment so only matching records are
// fetched.
func (s *NatsAttendanceRepository) GetByMeeting(ctx context.Context, meetingID string) ([]*models.AttendanceRecord, error) {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*models.AttendanceRecord, 0, len(keys))
	for _, key := range keys {
		keyMeetingID, _, _, err := s.keyBuilder.ParseRecordKey(key)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed attendance record key",
				"key", key, logging.ErrKey, err)
			continue
		}
		if keyMeetingID != meetingID {
			continue
		}

		record, err := s.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to get attendance record, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// ListAll returns every persisted attendance record.
func (s *NatsAttendanceRepository) ListAll(ctx context.Context) ([]*models.AttendanceRecord, error) {
	keys, err := s.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]*models.AttendanceRecord, 0, len(keys))
	for _, key := range keys {
		record, err := s.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to get attendance record, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
