// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// maxWebhookBodySize caps captured webhook payloads. Zoom event payloads are
// a few kilobytes at most, so anything larger is rejected outright.
const maxWebhookBodySize = 1 << 20

// WebhookBodyContextKey is the context key for storing raw webhook body
type WebhookBodyContextKey struct{}

// WebhookBodyCaptureMiddleware captures the raw request body for the given
// webhook paths and stores it in the request context. Signature validation
// needs the exact bytes Zoom signed, so the body must be captured before any
// decoding touches it.
func WebhookBodyCaptureMiddleware(paths ...string) func(http.Handler) http.Handler {
	capture := make(map[string]bool, len(paths))
	for _, p := range paths {
		capture[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if capture[r.URL.Path] {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize+1))
				if err != nil {
					http.Error(w, "Failed to read request body", http.StatusBadRequest)
					return
				}
				if len(body) > maxWebhookBodySize {
					http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
					return
				}

				_ = r.Body.Close()

				// Downstream handlers may still read the body themselves
				r.Body = io.NopCloser(bytes.NewReader(body))

				ctx := context.WithValue(r.Context(), WebhookBodyContextKey{}, body)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetRawBodyFromContext extracts the raw body from the context
func GetRawBodyFromContext(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(WebhookBodyContextKey{}).([]byte)
	return body, ok
}
