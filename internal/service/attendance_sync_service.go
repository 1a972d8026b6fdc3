// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the business logic of the attendance service:
// webhook event processing, attendance synchronization, and attendance
// queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/concurrent"
)

// syncWorkerCount bounds the number of concurrent record writes per meeting.
const syncWorkerCount = 10

// AttendanceSyncService drives the attendance pipeline for one ended meeting:
// authenticate, fetch the participant report, and persist one record per
// reported session.
type AttendanceSyncService struct {
	tokenProvider        domain.TokenProvider
	participantReporter  domain.ParticipantReporter
	attendanceRepository domain.AttendanceRepository
	messageBuilder       domain.MessagePublisher
	pool                 *concurrent.WorkerPool
}

// NewAttendanceSyncService creates a new AttendanceSyncService.
func NewAttendanceSyncService(
	tokenProvider domain.TokenProvider,
	participantReporter domain.ParticipantReporter,
	attendanceRepository domain.AttendanceRepository,
	messageBuilder domain.MessagePublisher,
) *AttendanceSyncService {
	return &AttendanceSyncService{
		tokenProvider:        tokenProvider,
		participantReporter:  participantReporter,
		attendanceRepository: attendanceRepository,
		messageBuilder:       messageBuilder,
		pool:                 concurrent.NewWorkerPool(syncWorkerCount),
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *AttendanceSyncService) ServiceReady() bool {
	return s.tokenProvider != nil &&
		s.participantReporter != nil &&
		s.attendanceRepository != nil
}

// SyncMeetingAttendance fetches the participant report for an ended meeting
// and persists one attendance record per reported session. Writes are issued
// concurrently and are individually atomic: if some writes fail the others
// still complete and stay persisted, and the returned error reports the whole
// synchronization as failed. There is no rollback and the operation itself is
// never retried; a redelivered event is the only retry path, and the
// existence check in the repository keeps it from duplicating records.
func (s *AttendanceSyncService) SyncMeetingAttendance(ctx context.Context, meetingUUID, topic string) error {
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uuid", meetingUUID))

	token, err := s.tokenProvider.Token(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to obtain platform token", logging.ErrKey, err)
		return err
	}

	sessions, err := s.participantReporter.GetMeetingParticipants(ctx, meetingUUID, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch participant report", logging.ErrKey, err)
		return err
	}

	if len(sessions) == 0 {
		slog.InfoContext(ctx, "participant report is empty, nothing to persist")
		return nil
	}

	records, err := s.buildRecords(meetingUUID, topic, sessions)
	if err != nil {
		return err
	}

	var created atomic.Int64
	functions := make([]func() error, len(records))
	for i, record := range records {
		functions[i] = func() error {
			wasCreated, err := s.attendanceRepository.Create(ctx, record)
			if err != nil {
				return fmt.Errorf("participant %q: %w", record.Name, err)
			}
			if wasCreated {
				created.Add(1)
			}
			return nil
		}
	}

	errs := s.pool.RunAll(ctx, functions...)
	if len(errs) > 0 {
		slog.ErrorContext(ctx, "attendance synchronization completed with failures",
			"failed_count", len(errs),
			"total_count", len(records),
			logging.ErrKey, errs[0],
			logging.PriorityCritical(),
		)
		return domain.NewPersistError(
			fmt.Sprintf("failed to persist %d of %d attendance records", len(errs), len(records)), errs...)
	}

	slog.InfoContext(ctx, "attendance synchronization completed",
		"record_count", len(records),
		"created_count", created.Load(),
	)

	s.publishRecorded(ctx, meetingUUID, topic, len(records))

	return nil
}

// buildRecords maps the participant report onto attendance records. Report
// fields are carried verbatim; only the record identity and the recording
// timestamp are added here.
func (s *AttendanceSyncService) buildRecords(meetingUUID, topic string, sessions []models.ParticipantSession) ([]*models.AttendanceRecord, error) {
	recordedAt := time.Now().UTC()

	records := make([]*models.AttendanceRecord, 0, len(sessions))
	for _, session := range sessions {
		record := &models.AttendanceRecord{
			UID:             uuid.New().String(),
			MeetingID:       meetingUUID,
			Name:            session.Name,
			Email:           session.UserEmail,
			JoinTime:        session.JoinTime,
			LeaveTime:       session.LeaveTime,
			DurationSeconds: session.Duration,
			Topic:           topic,
			RecordedAt:      recordedAt,
		}
		if err := record.Validate(); err != nil {
			return nil, domain.NewFetchError("participant report contains a malformed entry", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// publishRecorded notifies downstream consumers that records were persisted.
// The publish is best-effort: the records are already stored, so a failure
// here is logged and does not fail the synchronization.
func (s *AttendanceSyncService) publishRecorded(ctx context.Context, meetingUUID, topic string, recordCount int) {
	if s.messageBuilder == nil {
		return
	}

	msg := models.AttendanceRecordedMessage{
		MeetingID:   meetingUUID,
		Topic:       topic,
		RecordCount: recordCount,
		RecordedAt:  time.Now().UTC(),
	}
	if err := s.messageBuilder.PublishAttendanceRecorded(ctx, msg); err != nil {
		slog.WarnContext(ctx, "failed to publish attendance recorded message", logging.ErrKey, err)
	}
}
