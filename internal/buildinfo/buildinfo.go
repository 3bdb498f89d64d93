// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package buildinfo carries version metadata stamped at build time.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
)

// Set via -ldflags at release time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// UserAgent identifies gizitrack in outbound HTTP requests.
var UserAgent string

func init() {
	UserAgent = fmt.Sprintf("gizitrack/%s (%s %s)", Version, runtime.GOOS, runtime.GOARCH)
}

// String returns a human-readable multi-line version report.
func String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s\n", Version)
	fmt.Fprintf(&b, "Commit: %s\n", Commit)
	fmt.Fprintf(&b, "Build date: %s\n", Date)
	fmt.Fprintf(&b, "Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// JSON returns the version metadata as a JSON document.
func JSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	})
}
