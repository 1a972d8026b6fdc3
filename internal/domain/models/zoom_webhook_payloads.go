// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"fmt"
)

// Zoom webhook event types handled by the service. Every other event type is
// acknowledged and ignored so that Zoom does not treat it as a delivery
// failure and retry indefinitely.
const (
	ZoomEventEndpointURLValidation = "endpoint.url_validation"
	ZoomEventMeetingEnded          = "meeting.ended"
)

// ZoomWebhookEvent is the envelope Zoom delivers to the webhook endpoint.
// The payload shape depends on the event type, so it is kept raw until the
// event has been classified.
type ZoomWebhookEvent struct {
	Event   string          `json:"event"`
	EventTS int64           `json:"event_ts"`
	Payload json.RawMessage `json:"payload"`
}

// ZoomEndpointValidationPayload is the payload of the endpoint.url_validation
// challenge event. The plain token is the provider-issued nonce.
type ZoomEndpointValidationPayload struct {
	PlainToken string `json:"plainToken"`
}

// ZoomEndpointValidationResponse is the body Zoom expects back from the
// challenge-response handshake. A single byte difference in the encoding
// causes Zoom to reject the endpoint.
type ZoomEndpointValidationResponse struct {
	PlainToken     string `json:"plainToken"`
	EncryptedToken string `json:"encryptedToken"`
}

// ZoomMeetingEndedPayload is the payload of meeting.ended webhook events.
type ZoomMeetingEndedPayload struct {
	Object struct {
		UUID      string `json:"uuid"`
		ID        string `json:"id"` // Zoom sends as string in webhook events
		HostID    string `json:"host_id"`
		Topic     string `json:"topic"`
		Type      int    `json:"type"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Timezone  string `json:"timezone"`
	} `json:"object"`
}

// ToEndpointValidationPayload parses the raw payload as an
// endpoint.url_validation challenge.
func (e *ZoomWebhookEvent) ToEndpointValidationPayload() (*ZoomEndpointValidationPayload, error) {
	var payload ZoomEndpointValidationPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse endpoint validation payload: %w", err)
	}
	return &payload, nil
}

// ToMeetingEndedPayload parses the raw payload as a meeting.ended event.
func (e *ZoomWebhookEvent) ToMeetingEndedPayload() (*ZoomMeetingEndedPayload, error) {
	var payload ZoomMeetingEndedPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse meeting.ended payload: %w", err)
	}
	return &payload, nil
}
