// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomWebhookValidator_SignPlainToken(t *testing.T) {
	validator := NewZoomWebhookValidator("test-secret")

	// The encoded hash must equal the standard base64 HMAC-SHA256 encoding.
	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte("qgg8vlvZRS6UYooatFL8Aw"))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, validator.SignPlainToken("qgg8vlvZRS6UYooatFL8Aw"))
}

func TestZoomWebhookValidator_SignPlainToken_Deterministic(t *testing.T) {
	validator := NewZoomWebhookValidator("test-secret")

	first := validator.SignPlainToken("nonce")
	for range 5 {
		assert.Equal(t, first, validator.SignPlainToken("nonce"))
	}

	// Different secret or nonce yields a different hash.
	assert.NotEqual(t, first, validator.SignPlainToken("other-nonce"))
	assert.NotEqual(t, first, NewZoomWebhookValidator("other-secret").SignPlainToken("nonce"))
}

func TestZoomWebhookValidator_ValidateSignature(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"event":"meeting.ended"}`)
	timestamp := "1724833200"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(fmt.Appendf(nil, "v0:%s:%s", timestamp, body))
	validSignature := SignaturePrefix + hex.EncodeToString(mac.Sum(nil))

	tests := []struct {
		name      string
		secret    string
		signature string
		timestamp string
		wantErr   bool
	}{
		{
			name:      "valid signature",
			secret:    secret,
			signature: validSignature,
			timestamp: timestamp,
			wantErr:   false,
		},
		{
			name:      "tampered signature",
			secret:    secret,
			signature: SignaturePrefix + "deadbeef",
			timestamp: timestamp,
			wantErr:   true,
		},
		{
			name:      "missing signature",
			secret:    secret,
			signature: "",
			timestamp: timestamp,
			wantErr:   true,
		},
		{
			name:      "missing timestamp",
			secret:    secret,
			signature: validSignature,
			timestamp: "",
			wantErr:   true,
		},
		{
			name:      "secret not configured",
			secret:    "",
			signature: validSignature,
			timestamp: timestamp,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewZoomWebhookValidator(tt.secret)
			err := validator.ValidateSignature(body, tt.signature, tt.timestamp)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestZoomWebhookValidator_Configured(t *testing.T) {
	require.True(t, NewZoomWebhookValidator("secret").Configured())
	require.False(t, NewZoomWebhookValidator("").Configured())
}
