// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
)

// reportPageSize is the page size requested from the participant report API.
const reportPageSize = 300

// participantReportResponse is the response shape of the participant report API.
type participantReportResponse struct {
	PageCount     int                         `json:"page_count"`
	PageSize      int                         `json:"page_size"`
	TotalRecords  int                         `json:"total_records"`
	NextPageToken string                      `json:"next_page_token"`
	Participants  []models.ParticipantSession `json:"participants"`
}

// GetMeetingParticipants retrieves the participant sessions reported for an
// ended meeting, in the order the report API returned them. Pages are walked
// until the report is exhausted; entries are appended without deduplication
// or reordering.
func (c *Client) GetMeetingParticipants(ctx context.Context, meetingUUID string, token *oauth2.Token) ([]models.ParticipantSession, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "get_meeting_participants"))

	if meetingUUID == "" {
		return nil, domain.NewFetchError("meeting UUID is required")
	}

	basePath := fmt.Sprintf("/report/meetings/%s/participants", escapeMeetingUUID(meetingUUID))

	var participants []models.ParticipantSession
	pageToken := ""
	for {
		path := fmt.Sprintf("%s?page_size=%d", basePath, reportPageSize)
		if pageToken != "" {
			path += "&next_page_token=" + url.QueryEscape(pageToken)
		}

		page, err := c.getParticipantReportPage(ctx, path, token)
		if err != nil {
			return nil, err
		}

		participants = append(participants, page.Participants...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	slog.InfoContext(ctx, "successfully retrieved meeting participants",
		"participant_count", len(participants))

	return participants, nil
}

func (c *Client) getParticipantReportPage(ctx context.Context, path string, token *oauth2.Token) (*participantReportResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get participant report", logging.ErrKey, err)
		return nil, domain.NewFetchError("participant report request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := parseErrorResponse(body)
		slog.ErrorContext(ctx, "participant report returned error",
			logging.ErrKey, err, "status", resp.StatusCode)
		return nil, domain.NewFetchError(
			fmt.Sprintf("participant report rejected with status %d", resp.StatusCode), err)
	}

	var page participantReportResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		slog.ErrorContext(ctx, "failed to decode participant report", logging.ErrKey, err)
		return nil, domain.NewFetchError("malformed participant report", err)
	}

	return &page, nil
}

// escapeMeetingUUID URL-escapes a meeting UUID for use in a request path.
// Per Zoom API rules, UUIDs that begin with a slash or contain a double slash
// must be double-escaped.
func escapeMeetingUUID(uuid string) string {
	if strings.HasPrefix(uuid, "/") || strings.Contains(uuid, "//") {
		uuid = url.QueryEscape(uuid)
	}
	return url.QueryEscape(uuid)
}
