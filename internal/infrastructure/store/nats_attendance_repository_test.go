// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

func testRecord(meetingID, name, joinTime string) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		UID:             "uid-" + name,
		MeetingID:       meetingID,
		Name:            name,
		Email:           name + "@example.org",
		JoinTime:        joinTime,
		LeaveTime:       "2024-05-01T10:10:00Z",
		DurationSeconds: 600,
		Topic:           "Weekly Sync",
		RecordedAt:      time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC),
	}
}

func TestNatsAttendanceRepositoryCreate(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsAttendanceRepository(kv)

	record := testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z")

	created, err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, kv.createCalls)

	// Round trip through the store preserves every field.
	stored, err := repo.GetByMeeting(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, record, stored[0])
}

func TestNatsAttendanceRepositoryCreateDuplicate(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsAttendanceRepository(kv)

	record := testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z")

	created, err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.True(t, created)

	// A redelivered event carries the same (meeting, participant, join time)
	// triple; the second write loses the create-if-absent race without error
	// and the stored record keeps its original UID.
	redelivered := testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z")
	redelivered.UID = "uid-different"

	created, err = repo.Create(context.Background(), redelivered)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := repo.GetByMeeting(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "uid-Alice", stored[0].UID)

	// A second session by the same participant is a distinct record.
	created, err = repo.Create(context.Background(), testRecord("abc-123", "Alice", "2024-05-01T10:30:00Z"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestNatsAttendanceRepositoryCreateStoreErrors(t *testing.T) {
	t.Run("write failure", func(t *testing.T) {
		kv := newMockNatsKeyValue()
		kv.createErr = errMockStore
		repo := NewNatsAttendanceRepository(kv)

		created, err := repo.Create(context.Background(), testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z"))
		assert.False(t, created)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})

	t.Run("repository not ready", func(t *testing.T) {
		repo := NewNatsAttendanceRepository(nil)

		created, err := repo.Create(context.Background(), testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z"))
		assert.False(t, created)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
	})
}

func TestNatsAttendanceRepositoryReadErrors(t *testing.T) {
	t.Run("list failure", func(t *testing.T) {
		kv := newMockNatsKeyValue()
		kv.listErr = errMockStore
		repo := NewNatsAttendanceRepository(kv)

		records, err := repo.ListAll(context.Background())
		assert.Nil(t, records)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})

	t.Run("unreadable record is skipped", func(t *testing.T) {
		kv := newMockNatsKeyValue()
		repo := NewNatsAttendanceRepository(kv)

		created, err := repo.Create(context.Background(), testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z"))
		require.NoError(t, err)
		require.True(t, created)

		kv.getErr = errMockStore

		records, err := repo.GetByMeeting(context.Background(), "abc-123")
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestNatsAttendanceRepositoryGetByMeeting(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsAttendanceRepository(kv)

	for _, record := range []*models.AttendanceRecord{
		testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z"),
		testRecord("abc-123", "Bob", "2024-05-01T10:02:00Z"),
		testRecord("other-meeting", "Carol", "2024-05-01T11:00:00Z"),
	} {
		created, err := repo.Create(context.Background(), record)
		require.NoError(t, err)
		require.True(t, created)
	}

	records, err := repo.GetByMeeting(context.Background(), "abc-123")
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "abc-123", record.MeetingID)
	}

	records, err = repo.GetByMeeting(context.Background(), "no-such-meeting")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNatsAttendanceRepositoryListAll(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsAttendanceRepository(kv)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	for _, record := range []*models.AttendanceRecord{
		testRecord("abc-123", "Alice", "2024-05-01T10:00:00Z"),
		testRecord("other-meeting", "Carol", "2024-05-01T11:00:00Z"),
	} {
		created, err := repo.Create(context.Background(), record)
		require.NoError(t, err)
		require.True(t, created)
	}

	records, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
