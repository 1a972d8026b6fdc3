// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-attendance-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-attendance-service/pkg/utils"
)

// AttendanceSyncer runs the attendance pipeline for one ended meeting.
type AttendanceSyncer interface {
	SyncMeetingAttendance(ctx context.Context, meetingUUID, topic string) error
}

// ZoomWebhookService handles Zoom webhook event processing.
type ZoomWebhookService struct {
	attendanceSyncer AttendanceSyncer
	webhookValidator domain.WebhookValidator
}

// WebhookRequest represents the webhook processing request.
type WebhookRequest struct {
	Signature string
	Timestamp string
	RawBody   []byte
}

// WebhookResponse represents the webhook processing response. Either Message
// is set (plain acknowledgment) or the token pair is set (challenge
// response).
type WebhookResponse struct {
	Message        *string
	PlainToken     *string
	EncryptedToken *string
}

// NewZoomWebhookService creates a new ZoomWebhookService.
func NewZoomWebhookService(
	attendanceSyncer AttendanceSyncer,
	webhookValidator domain.WebhookValidator,
) *ZoomWebhookService {
	return &ZoomWebhookService{
		attendanceSyncer: attendanceSyncer,
		webhookValidator: webhookValidator,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *ZoomWebhookService) ServiceReady() bool {
	return s.attendanceSyncer != nil && s.webhookValidator != nil
}

// ProcessWebhookEvent processes one Zoom webhook delivery. Events the service
// does not handle, and bodies that do not parse as a webhook envelope, are
// acknowledged and ignored so Zoom does not retry them indefinitely.
func (s *ZoomWebhookService) ProcessWebhookEvent(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	if err := s.validateSignature(req); err != nil {
		return nil, err
	}

	var event models.ZoomWebhookEvent
	if err := json.Unmarshal(req.RawBody, &event); err != nil {
		slog.WarnContext(ctx, "webhook body is not a webhook envelope, ignoring", logging.ErrKey, err)
		return ignoredResponse(), nil
	}

	ctx = logging.AppendCtx(ctx, slog.String("event_type", event.Event))

	switch event.Event {
	case models.ZoomEventEndpointURLValidation:
		return s.handleEndpointValidation(ctx, &event)
	case models.ZoomEventMeetingEnded:
		return s.handleMeetingEnded(ctx, &event)
	default:
		slog.InfoContext(ctx, "ignoring unhandled webhook event type")
		return ignoredResponse(), nil
	}
}

// validateSignature checks the delivery signature when Zoom sent one. The
// signature headers are absent on deliveries from accounts without signing
// enabled, so their absence is not an error.
func (s *ZoomWebhookService) validateSignature(req WebhookRequest) error {
	if req.Signature == "" && req.Timestamp == "" {
		return nil
	}
	if !s.webhookValidator.Configured() {
		return domain.NewInternalError("webhook secret not configured")
	}
	if err := s.webhookValidator.ValidateSignature(req.RawBody, req.Signature, req.Timestamp); err != nil {
		return domain.NewUnauthorizedError("invalid webhook signature", err)
	}
	return nil
}

// handleEndpointValidation answers the endpoint ownership challenge: the
// response pairs the provider-issued nonce with its HMAC signature.
func (s *ZoomWebhookService) handleEndpointValidation(ctx context.Context, event *models.ZoomWebhookEvent) (*WebhookResponse, error) {
	payload, err := event.ToEndpointValidationPayload()
	if err != nil {
		slog.ErrorContext(ctx, "invalid endpoint validation payload", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid validation payload format", err)
	}
	if payload.PlainToken == "" {
		return nil, domain.NewValidationError("missing plainToken in validation payload")
	}

	if !s.webhookValidator.Configured() {
		slog.ErrorContext(ctx, "webhook validator not configured for endpoint validation")
		return nil, domain.NewInternalError("webhook validation not configured")
	}

	encryptedToken := s.webhookValidator.SignPlainToken(payload.PlainToken)

	slog.InfoContext(ctx, "webhook endpoint validation completed",
		"plain_token", payload.PlainToken)

	return &WebhookResponse{
		PlainToken:     utils.StringPtr(payload.PlainToken),
		EncryptedToken: utils.StringPtr(encryptedToken),
	}, nil
}

// handleMeetingEnded runs the attendance pipeline for the ended meeting.
func (s *ZoomWebhookService) handleMeetingEnded(ctx context.Context, event *models.ZoomWebhookEvent) (*WebhookResponse, error) {
	payload, err := event.ToMeetingEndedPayload()
	if err != nil {
		slog.WarnContext(ctx, "malformed meeting.ended payload, ignoring", logging.ErrKey, err)
		return ignoredResponse(), nil
	}
	if payload.Object.UUID == "" {
		return nil, domain.NewValidationError("missing meeting UUID in meeting.ended payload")
	}

	if err := s.attendanceSyncer.SyncMeetingAttendance(ctx, payload.Object.UUID, payload.Object.Topic); err != nil {
		return nil, err
	}

	return &WebhookResponse{
		Message: utils.StringPtr("Attendance saved"),
	}, nil
}

func ignoredResponse() *WebhookResponse {
	return &WebhookResponse{
		Message: utils.StringPtr("Ignored"),
	}
}
