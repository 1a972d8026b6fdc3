// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// NATS subjects published by the attendance service.
const (
	// AttendanceRecordedSubject carries a notification that the attendance
	// records for one ended meeting have been persisted.
	AttendanceRecordedSubject = "lfx.attendance-api.attendance_recorded"
)

// AttendanceRecordedMessage is the msgpack-encoded notification published
// after a successful attendance synchronization.
type AttendanceRecordedMessage struct {
	MeetingID   string    `msgpack:"meeting_id"`
	Topic       string    `msgpack:"topic,omitempty"`
	RecordCount int       `msgpack:"record_count"`
	RecordedAt  time.Time `msgpack:"recorded_at"`
}
