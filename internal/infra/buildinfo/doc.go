// Package buildinfo provides build information for reqlog binaries.
//
// This package exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - Repository: Source repository URL
//
// Usage:
//
//	go build -ldflags "-X github.com/yndnr/reqlog-go/internal/infra/buildinfo.Version=1.0.0"
//
// Missing commit and Go version fall back to the module build info
// embedded by the Go toolchain. The version is also the default
// project.version stamped on log records.
package buildinfo
