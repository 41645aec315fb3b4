// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"runtime"
	"strings"
)

const notAvailable = "N/A"

// BuildInfo carries the build-time metadata of the datactx binary.
//
// BuildVersion, BuildDate and BuildCommit are typically injected by linker
// flags; AppVersion comes from the application config.
type BuildInfo struct {
	AppVersion   string
	BuildVersion string
	BuildDate    string
	BuildCommit  string
	GoVersion    string
}

// NewBuildInfo constructs [BuildInfo], replacing empty values with "N/A".
func NewBuildInfo(appVersion, buildVersion, buildDate, buildCommit string) BuildInfo {
	return BuildInfo{
		AppVersion:   orNotAvailable(appVersion),
		BuildVersion: orNotAvailable(buildVersion),
		BuildDate:    orNotAvailable(buildDate),
		BuildCommit:  orNotAvailable(buildCommit),
		GoVersion:    runtime.Version(),
	}
}

// String renders one "Label: value" line per field.
func (b BuildInfo) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "App version: %s\n", b.AppVersion)
	fmt.Fprintf(&sb, "Build version: %s\n", b.BuildVersion)
	fmt.Fprintf(&sb, "Build date: %s\n", b.BuildDate)
	fmt.Fprintf(&sb, "Build commit: %s\n", b.BuildCommit)
	fmt.Fprintf(&sb, "Go version: %s\n", b.GoVersion)
	return sb.String()
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
