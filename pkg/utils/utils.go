// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides small helpers shared across the service.
package utils

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}
