// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
)

// queryDateLayout is the date format accepted by the attendance search
// parameters.
const queryDateLayout = "2006-01-02"

// AttendanceQuery carries the optional filters of an attendance search.
// Filters combine with AND; an empty query matches every record.
type AttendanceQuery struct {
	// Name matches records whose participant name contains the value,
	// case-insensitively.
	Name string
	// Date keeps records recorded on the given day (YYYY-MM-DD, UTC).
	Date string
	// Until keeps records recorded on or before the end of the given day
	// (YYYY-MM-DD, UTC).
	Until string
}

// AttendanceQueryService serves read access to persisted attendance records.
type AttendanceQueryService struct {
	attendanceRepository domain.AttendanceRepository
}

// NewAttendanceQueryService creates a new AttendanceQueryService.
func NewAttendanceQueryService(attendanceRepository domain.AttendanceRepository) *AttendanceQueryService {
	return &AttendanceQueryService{
		attendanceRepository: attendanceRepository,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *AttendanceQueryService) ServiceReady() bool {
	return s.attendanceRepository != nil
}

// GetMeetingAttendance returns all records persisted for one meeting.
func (s *AttendanceQueryService) GetMeetingAttendance(ctx context.Context, meetingID string) ([]*models.AttendanceRecord, error) {
	if meetingID == "" {
		return nil, domain.NewValidationError("meeting ID is required")
	}
	return s.attendanceRepository.GetByMeeting(ctx, meetingID)
}

// SearchAttendance returns the records matching the given filters. Filtering
// happens in memory over the full record set; the store does no query shaping.
func (s *AttendanceQueryService) SearchAttendance(ctx context.Context, query AttendanceQuery) ([]*models.AttendanceRecord, error) {
	dayStart, dayEnd, err := parseDayWindow(query.Date)
	if err != nil {
		return nil, err
	}
	_, untilEnd, err := parseDayWindow(query.Until)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	nameFilter := strings.ToLower(query.Name)

	matched := make([]*models.AttendanceRecord, 0, len(records))
	for _, record := range records {
		if nameFilter != "" && !strings.Contains(strings.ToLower(record.Name), nameFilter) {
			continue
		}
		if query.Date != "" && (record.RecordedAt.Before(dayStart) || !record.RecordedAt.Before(dayEnd)) {
			continue
		}
		if query.Until != "" && !record.RecordedAt.Before(untilEnd) {
			continue
		}
		matched = append(matched, record)
	}

	return matched, nil
}

// parseDayWindow parses a YYYY-MM-DD value into the UTC half-open interval
// [start of day, start of next day). An empty value yields zero times.
func parseDayWindow(value string) (time.Time, time.Time, error) {
	if value == "" {
		return time.Time{}, time.Time{}, nil
	}
	day, err := time.ParseInLocation(queryDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError(
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return day, day.AddDate(0, 0, 1), nil
}
