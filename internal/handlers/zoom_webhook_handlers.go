// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers contains the HTTP handlers of the attendance service.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/infrastructure/zoom/webhook"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/constants"
)

// ZoomWebhookHandler handles inbound Zoom webhook deliveries.
type ZoomWebhookHandler struct {
	webhookService *service.ZoomWebhookService
}

// NewZoomWebhookHandler creates a new ZoomWebhookHandler.
func NewZoomWebhookHandler(webhookService *service.ZoomWebhookService) *ZoomWebhookHandler {
	return &ZoomWebhookHandler{
		webhookService: webhookService,
	}
}

// HandleZoomWebhook processes one webhook delivery. Challenge events answer
// with the token pair Zoom expects; everything else answers with a plain-text
// acknowledgment.
func (h *ZoomWebhookHandler) HandleZoomWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawBody, ok := middleware.GetRawBodyFromContext(ctx)
	if !ok {
		// The capture middleware is path-scoped; fall back to the body stream
		// if the route is mounted elsewhere.
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeWebhookError(ctx, w, domain.NewValidationError("failed to read request body", err))
			return
		}
		rawBody = body
	}

	resp, err := h.webhookService.ProcessWebhookEvent(ctx, service.WebhookRequest{
		Signature: r.Header.Get(constants.ZoomSignatureHeader),
		Timestamp: r.Header.Get(constants.ZoomTimestampHeader),
		RawBody:   rawBody,
	})
	if err != nil {
		writeWebhookError(ctx, w, err)
		return
	}

	if resp.PlainToken != nil && resp.EncryptedToken != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(constants.ZoomSignatureHeader, webhook.SignaturePrefix+*resp.EncryptedToken)
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(models.ZoomEndpointValidationResponse{
			PlainToken:     *resp.PlainToken,
			EncryptedToken: *resp.EncryptedToken,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to write validation response", logging.ErrKey, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if resp.Message != nil {
		_, _ = w.Write([]byte(*resp.Message))
	}
}

// writeWebhookError maps a processing error onto a webhook response. Internal
// detail stays out of the body: Zoom only needs to know whether to retry.
func writeWebhookError(ctx context.Context, w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		slog.WarnContext(ctx, "rejecting webhook delivery", logging.ErrKey, err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(err.Error()))
	case domain.ErrorTypeUnauthorized:
		slog.WarnContext(ctx, "rejecting unauthenticated webhook delivery", logging.ErrKey, err)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("Unauthorized"))
	default:
		slog.ErrorContext(ctx, "webhook processing failed", logging.ErrKey, err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Error"))
	}
}
