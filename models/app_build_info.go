// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata of the server binary.
//
// The values are injected by linker flags and reported by GET /api/version
// together with the configured application version.
type AppBuildInfo struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty or "N/A" linker values are left out.
func NewAppBuildInfo(version, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version:     version,
		BuildDate:   knownOrEmpty(buildDate),
		BuildCommit: knownOrEmpty(buildCommit),
	}
}

func knownOrEmpty(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}
