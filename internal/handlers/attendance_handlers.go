// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
)

// AttendanceHandler serves read access to persisted attendance records.
type AttendanceHandler struct {
	queryService *service.AttendanceQueryService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(queryService *service.AttendanceQueryService) *AttendanceHandler {
	return &AttendanceHandler{
		queryService: queryService,
	}
}

// GetMeetingAttendance returns the records persisted for one meeting.
func (h *AttendanceHandler) GetMeetingAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.queryService.GetMeetingAttendance(ctx, chi.URLParam(r, "meetingID"))
	if err != nil {
		writeAPIError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, records)
}

// SearchAttendance returns the records matching the query parameters.
func (h *AttendanceHandler) SearchAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.queryService.SearchAttendance(ctx, service.AttendanceQuery{
		Name:  r.URL.Query().Get("name"),
		Date:  r.URL.Query().Get("date"),
		Until: r.URL.Query().Get("until"),
	})
	if err != nil {
		writeAPIError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, records)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "failed to write response", logging.ErrKey, err)
	}
}

// apiError is the JSON error body of the read endpoints.
type apiError struct {
	Message string `json:"message"`
}

func writeAPIError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case domain.ErrorTypeNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case domain.ErrorTypeUnavailable:
		status = http.StatusServiceUnavailable
		message = "service unavailable"
	default:
		slog.ErrorContext(ctx, "request failed", logging.ErrKey, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{Message: message})
}
