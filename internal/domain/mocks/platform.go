// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mocks contains testify mocks for the domain collaborator interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// MockTokenProvider implements domain.TokenProvider for testing
type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

// MockParticipantReporter implements domain.ParticipantReporter for testing
type MockParticipantReporter struct {
	mock.Mock
}

func (m *MockParticipantReporter) GetMeetingParticipants(ctx context.Context, meetingUUID string, token *oauth2.Token) ([]models.ParticipantSession, error) {
	args := m.Called(ctx, meetingUUID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParticipantSession), args.Error(1)
}

// MockWebhookValidator implements domain.WebhookValidator for testing
type MockWebhookValidator struct {
	mock.Mock
}

func (m *MockWebhookValidator) ValidateSignature(body []byte, signature, timestamp string) error {
	args := m.Called(body, signature, timestamp)
	return args.Error(0)
}

func (m *MockWebhookValidator) SignPlainToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

func (m *MockWebhookValidator) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}
