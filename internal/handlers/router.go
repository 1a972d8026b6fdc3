// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/middleware"
)

// zoomWebhookPath is the only route whose raw body must be preserved for
// signature validation.
const zoomWebhookPath = "/webhooks/zoom"

// NewRouter assembles the service routes behind the shared middleware chain.
// The body capture middleware must run before routing so signature validation
// sees the exact bytes Zoom signed.
func NewRouter(
	webhookHandler *ZoomWebhookHandler,
	attendanceHandler *AttendanceHandler,
	healthHandler *HealthHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggerMiddleware())
	r.Use(middleware.WebhookBodyCaptureMiddleware(zoomWebhookPath))

	r.Post(zoomWebhookPath, webhookHandler.HandleZoomWebhook)

	r.Get("/attendance", attendanceHandler.SearchAttendance)
	r.Get("/attendance/{meetingID}", attendanceHandler.GetMeetingAttendance)

	r.Get("/livez", healthHandler.Livez)
	r.Get("/readyz", healthHandler.Readyz)

	return r
}
