// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package platforms wires meeting-platform providers from the environment.
package platforms

// PlatformConfigs holds the configuration of every supported meeting
// platform. Zoom is the only platform today; the shape leaves room for
// others without reworking the entrypoint.
type PlatformConfigs struct {
	Zoom ZoomConfig
}

// NewPlatformConfigsFromEnv reads every platform configuration from the
// environment.
func NewPlatformConfigsFromEnv() PlatformConfigs {
	return PlatformConfigs{
		Zoom: NewZoomConfigFromEnv(),
	}
}
