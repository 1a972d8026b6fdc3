// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
)

func testToken() *oauth2.Token {
	return &oauth2.Token{AccessToken: "test-access-token", TokenType: "bearer"}
}

func TestGetMeetingParticipants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/report/meetings/abc-123/participants", r.URL.Path)
		assert.Equal(t, "300", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"page_count": 1,
			"total_records": 2,
			"next_page_token": "",
			"participants": [
				{"name": "Alice", "user_email": "alice@example.org", "join_time": "2024-05-01T10:00:00Z", "leave_time": "2024-05-01T10:10:00Z", "duration": 600},
				{"name": "Bob", "join_time": "2024-05-01T10:02:00Z", "leave_time": "2024-05-01T10:07:00Z", "duration": 300}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	participants, err := client.GetMeetingParticipants(context.Background(), "abc-123", testToken())
	require.NoError(t, err)
	require.Len(t, participants, 2)

	assert.Equal(t, "Alice", participants[0].Name)
	assert.Equal(t, "alice@example.org", participants[0].UserEmail)
	assert.Equal(t, "2024-05-01T10:00:00Z", participants[0].JoinTime)
	assert.Equal(t, "2024-05-01T10:10:00Z", participants[0].LeaveTime)
	assert.Equal(t, 600, participants[0].Duration)

	assert.Equal(t, "Bob", participants[1].Name)
	assert.Empty(t, participants[1].UserEmail)
	assert.Equal(t, 300, participants[1].Duration)
}

func TestGetMeetingParticipantsPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("next_page_token") {
		case "":
			_, _ = w.Write([]byte(`{
				"next_page_token": "page-2",
				"participants": [{"name": "Alice", "duration": 600}]
			}`))
		case "page-2":
			_, _ = w.Write([]byte(`{
				"next_page_token": "",
				"participants": [{"name": "Bob", "duration": 300}]
			}`))
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("next_page_token"))
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	participants, err := client.GetMeetingParticipants(context.Background(), "abc-123", testToken())
	require.NoError(t, err)
	require.Len(t, participants, 2)

	// Report order is preserved across pages.
	assert.Equal(t, "Alice", participants[0].Name)
	assert.Equal(t, "Bob", participants[1].Name)
}

func TestGetMeetingParticipantsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":3001,"message":"Meeting does not exist."}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	participants, err := client.GetMeetingParticipants(context.Background(), "missing-uuid", testToken())
	assert.Nil(t, participants)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeFetch, domain.GetErrorType(err))
	assert.Contains(t, err.Error(), "Meeting does not exist")
}

func TestGetMeetingParticipantsEmptyUUID(t *testing.T) {
	client := NewClient(Config{})

	participants, err := client.GetMeetingParticipants(context.Background(), "", testToken())
	assert.Nil(t, participants)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeFetch, domain.GetErrorType(err))
}

func TestEscapeMeetingUUID(t *testing.T) {
	tests := []struct {
		name     string
		uuid     string
		expected string
	}{
		{
			name:     "plain uuid",
			uuid:     "abc-123",
			expected: "abc-123",
		},
		{
			name:     "uuid with base64 padding",
			uuid:     "4444AAAiAAAAAiAiAiiAii==",
			expected: "4444AAAiAAAAAiAiAiiAii%3D%3D",
		},
		{
			name:     "uuid starting with slash is double escaped",
			uuid:     "/ajXp112QmuoKj4854875==",
			expected: "%252FajXp112QmuoKj4854875%253D%253D",
		},
		{
			name:     "uuid containing double slash is double escaped",
			uuid:     "abc//def",
			expected: "abc%252F%252Fdef",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, escapeMeetingUUID(tc.uuid))
		})
	}
}
