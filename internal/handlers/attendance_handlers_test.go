// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

func newQueryTestRouter(repo *mocks.MockAttendanceRepository) http.Handler {
	queryService := service.NewAttendanceQueryService(repo)
	return NewRouter(
		NewZoomWebhookHandler(nil),
		NewAttendanceHandler(queryService),
		NewHealthHandler(),
	)
}

func TestGetMeetingAttendanceEndpoint(t *testing.T) {
	repo := new(mocks.MockAttendanceRepository)
	repo.On("GetByMeeting", mock.Anything, "abc-123").Return([]*models.AttendanceRecord{
		{
			UID:             "uid-1",
			MeetingID:       "abc-123",
			Name:            "Alice",
			JoinTime:        "2024-05-01T10:00:00Z",
			DurationSeconds: 600,
			RecordedAt:      time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC),
		},
	}, nil)

	router := newQueryTestRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/abc-123", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var records []*models.AttendanceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, 600, records[0].DurationSeconds)
}

func TestSearchAttendanceEndpoint(t *testing.T) {
	repo := new(mocks.MockAttendanceRepository)
	repo.On("ListAll", mock.Anything).Return([]*models.AttendanceRecord{
		{UID: "uid-1", MeetingID: "abc-123", Name: "Alice Johnson", RecordedAt: time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)},
		{UID: "uid-2", MeetingID: "abc-123", Name: "Bob Smith", RecordedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
	}, nil)

	router := newQueryTestRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?name=alice&until=2024-05-01", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var records []*models.AttendanceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "uid-1", records[0].UID)
}

func TestSearchAttendanceEndpointInvalidDate(t *testing.T) {
	router := newQueryTestRouter(new(mocks.MockAttendanceRepository))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?date=not-a-date", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body apiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "invalid date")
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("livez", func(t *testing.T) {
		router := newQueryTestRouter(new(mocks.MockAttendanceRepository))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("readyz passes when checks pass", func(t *testing.T) {
		router := NewRouter(
			NewZoomWebhookHandler(nil),
			NewAttendanceHandler(nil),
			NewHealthHandler(ReadinessCheck{Name: "nats", Ready: func() bool { return true }}),
		)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("readyz fails when a check fails", func(t *testing.T) {
		router := NewRouter(
			NewZoomWebhookHandler(nil),
			NewAttendanceHandler(nil),
			NewHealthHandler(
				ReadinessCheck{Name: "nats", Ready: func() bool { return false }},
			),
		)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "nats")
	})
}
