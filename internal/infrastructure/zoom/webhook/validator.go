// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package webhook implements Zoom webhook signature validation and the
// endpoint-ownership challenge response.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// SignaturePrefix is the version tag Zoom prepends to webhook signatures and
// expects on the challenge-response header.
const SignaturePrefix = "v0="

// ZoomWebhookValidator handles validation of Zoom webhook deliveries using the
// webhook secret token shared with Zoom.
type ZoomWebhookValidator struct {
	SecretToken string
}

// NewZoomWebhookValidator creates a new Zoom webhook validator
func NewZoomWebhookValidator(secretToken string) *ZoomWebhookValidator {
	return &ZoomWebhookValidator{
		SecretToken: secretToken,
	}
}

// Configured reports whether a webhook secret is available.
func (v *ZoomWebhookValidator) Configured() bool {
	return v.SecretToken != ""
}

// ValidateSignature validates the delivery signature header:
// v0=hex(HMAC-SHA256(secret, "v0:{timestamp}:{body}")).
func (v *ZoomWebhookValidator) ValidateSignature(body []byte, signature, timestamp string) error {
	if v.SecretToken == "" {
		return fmt.Errorf("webhook secret token not configured")
	}

	if signature == "" {
		return fmt.Errorf("missing webhook signature")
	}

	if timestamp == "" {
		return fmt.Errorf("missing webhook timestamp")
	}

	message := fmt.Sprintf("v0:%s:%s", timestamp, body)

	h := hmac.New(sha256.New, []byte(v.SecretToken))
	h.Write([]byte(message))
	expectedSignature := SignaturePrefix + hex.EncodeToString(h.Sum(nil))

	// Constant-time comparison
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return fmt.Errorf("zoom webhook signature does not match expected signature")
	}

	return nil
}

// SignPlainToken computes the challenge response for an endpoint.url_validation
// nonce: the base64 encoding of HMAC-SHA256(secret, plainToken). The result
// must be byte-exact or Zoom rejects the endpoint.
func (v *ZoomWebhookValidator) SignPlainToken(plainToken string) string {
	h := hmac.New(sha256.New, []byte(v.SecretToken))
	h.Write([]byte(plainToken))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
