// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package domain contains the domain types and collaborator interfaces for the
// attendance service.
package domain

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// TokenProvider obtains short-lived bearer tokens for the meeting platform's
// report APIs using service-account credentials.
type TokenProvider interface {
	// Token returns a bearer token valid for at least the duration of one
	// synchronization operation.
	Token(ctx context.Context) (*oauth2.Token, error)
}

// ParticipantReporter retrieves the participant sessions reported for a
// finished meeting. Entries are returned in the order the platform reported
// them, without deduplication.
type ParticipantReporter interface {
	GetMeetingParticipants(ctx context.Context, meetingUUID string, token *oauth2.Token) ([]models.ParticipantSession, error)
}

// WebhookValidator validates inbound webhook deliveries and answers the
// endpoint-ownership challenge.
type WebhookValidator interface {
	// ValidateSignature checks the signature header of a webhook delivery
	// against the raw request body.
	ValidateSignature(body []byte, signature, timestamp string) error

	// SignPlainToken computes the challenge response for a provider-issued
	// nonce: the base64 encoding of HMAC-SHA256(secret, nonce).
	SignPlainToken(plainToken string) string

	// Configured reports whether a webhook secret is available.
	Configured() bool
}
