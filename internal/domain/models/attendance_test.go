// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttendanceRecord_Validate(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		record  *AttendanceRecord
		wantErr bool
	}{
		{
			name: "valid record",
			record: &AttendanceRecord{
				UID:             "uid-1",
				MeetingID:       "abc-123",
				Name:            "Alice",
				Email:           "alice@example.org",
				JoinTime:        "2026-08-20T10:00:00Z",
				LeaveTime:       "2026-08-20T10:10:00Z",
				DurationSeconds: 600,
				RecordedAt:      now,
			},
			wantErr: false,
		},
		{
			name: "email and topic are optional",
			record: &AttendanceRecord{
				MeetingID:       "abc-123",
				Name:            "Bob",
				DurationSeconds: 0,
				RecordedAt:      now,
			},
			wantErr: false,
		},
		{
			name: "missing meeting ID",
			record: &AttendanceRecord{
				Name:            "Alice",
				DurationSeconds: 600,
			},
			wantErr: true,
		},
		{
			name: "missing participant name",
			record: &AttendanceRecord{
				MeetingID:       "abc-123",
				DurationSeconds: 600,
			},
			wantErr: true,
		},
		{
			name: "negative duration",
			record: &AttendanceRecord{
				MeetingID:       "abc-123",
				Name:            "Alice",
				DurationSeconds: -1,
			},
			wantErr: true,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestZoomWebhookEvent_ToMeetingEndedPayload(t *testing.T) {
	event := &ZoomWebhookEvent{
		Event:   ZoomEventMeetingEnded,
		Payload: []byte(`{"object":{"uuid":"abc-123","topic":"Weekly Sync"}}`),
	}

	payload, err := event.ToMeetingEndedPayload()
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", payload.Object.UUID)
	assert.Equal(t, "Weekly Sync", payload.Object.Topic)
}

func TestZoomWebhookEvent_ToEndpointValidationPayload(t *testing.T) {
	event := &ZoomWebhookEvent{
		Event:   ZoomEventEndpointURLValidation,
		Payload: []byte(`{"plainToken":"qgg8vlvZRS6UYooatFL8Aw"}`),
	}

	payload, err := event.ToEndpointValidationPayload()
	assert.NoError(t, err)
	assert.Equal(t, "qgg8vlvZRS6UYooatFL8Aw", payload.PlainToken)

	event.Payload = []byte(`[`)
	_, err = event.ToEndpointValidationPayload()
	assert.Error(t, err)
}
