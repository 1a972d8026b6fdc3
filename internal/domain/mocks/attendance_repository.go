// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// MockAttendanceRepository implements domain.AttendanceRepository for testing
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) GetByMeeting(ctx context.Context, meetingID string) ([]*models.AttendanceRecord, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) ListAll(ctx context.Context) ([]*models.AttendanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRecord), args.Error(1)
}

// MockMessagePublisher implements domain.MessagePublisher for testing
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishAttendanceRecorded(ctx context.Context, msg models.AttendanceRecordedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
