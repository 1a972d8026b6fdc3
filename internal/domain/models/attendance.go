// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// AttendanceRecord is the persisted representation of one participant's single
// session within one meeting. Records are append-only: the sync service is the
// only writer and no update or delete path exists.
type AttendanceRecord struct {
	UID             string    `json:"uid"`
	MeetingID       string    `json:"meeting_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	JoinTime        string    `json:"join_time"`
	LeaveTime       string    `json:"leave_time"`
	DurationSeconds int       `json:"duration_seconds"`
	Topic           string    `json:"topic,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// Validate checks the invariants that must hold before a record is persisted.
func (r *AttendanceRecord) Validate() error {
	if r == nil {
		return fmt.Errorf("attendance record is nil")
	}
	if r.MeetingID == "" {
		return fmt.Errorf("attendance record missing meeting ID")
	}
	if r.Name == "" {
		return fmt.Errorf("attendance record missing participant name")
	}
	if r.DurationSeconds < 0 {
		return fmt.Errorf("attendance record has negative duration: %d", r.DurationSeconds)
	}
	return nil
}

// ParticipantSession is one join/leave session as reported by the platform's
// participant report API. Field values are carried verbatim into the persisted
// record; timestamps stay in the string form the platform delivered them in.
type ParticipantSession struct {
	Name      string `json:"name"`
	UserEmail string `json:"user_email"`
	JoinTime  string `json:"join_time"`
	LeaveTime string `json:"leave_time"`
	Duration  int    `json:"duration"`
}
