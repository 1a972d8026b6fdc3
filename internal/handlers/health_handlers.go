// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"log/slog"
	"net/http"
)

// ReadinessCheck reports whether one service dependency is usable.
type ReadinessCheck struct {
	Name  string
	Ready func() bool
}

// HealthHandler serves the Kubernetes liveness and readiness probes.
type HealthHandler struct {
	checks []ReadinessCheck
}

// NewHealthHandler creates a new HealthHandler with the given readiness
// checks.
func NewHealthHandler(checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		checks: checks,
	}
}

// Livez reports process liveness. It answers OK as long as the process can
// serve requests at all.
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Readyz reports readiness: every registered dependency check must pass.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	for _, check := range h.checks {
		if !check.Ready() {
			slog.WarnContext(r.Context(), "readiness check failed", "check", check.Name)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(check.Name + " not ready"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
