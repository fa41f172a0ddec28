//go:build tools
// +build tools

// Package tools documents development tool dependencies.
// These tools are installed globally via `go install` and are not tracked in go.mod
// since they are development tools, not runtime dependencies.
package tools

// Development tools:
//
// mockgen - regenerates internal/mocks from the core and ports interfaces
//   Run: go generate ./internal/mocks
//   Version: go.uber.org/mock v0.6.0 (pinned in the go:generate directives)
//
// Air - Live reload for cmd/campaign-api
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
