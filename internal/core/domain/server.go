// internal/core/domain/server.go
package domain

import (
	"strings"
	"time"
)

// Capability classifies what a tool server offers to the agents.
type Capability string

const (
	// CapabilitySearch servers expose web/news search tools
	CapabilitySearch Capability = "search"

	// CapabilityImage servers expose image generation tools
	CapabilityImage Capability = "image"

	// CapabilityFilesystem servers expose filesystem access tools
	CapabilityFilesystem Capability = "filesystem"
)

// IsValid reports whether the capability is one of the known kinds.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilitySearch, CapabilityImage, CapabilityFilesystem:
		return true
	default:
		return false
	}
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// ToolServerDescriptor describes one configured tool server.
// Descriptors are created at configuration load and immutable afterwards.
// A descriptor carries either a Command (stdio launch spec) or an Endpoint
// (HTTP URL), never both.
type ToolServerDescriptor struct {
	// Name uniquely identifies the server within the registry
	Name string `yaml:"name"`

	// Capability classifies the server (search, image, filesystem)
	Capability Capability `yaml:"capability"`

	// Command is the stdio launch spec (argv), e.g. ["python", "servers/search_server.py"]
	Command []string `yaml:"command,omitempty"`

	// Endpoint is the HTTP endpoint for remote servers
	Endpoint string `yaml:"endpoint,omitempty"`

	// Enabled=false keeps the server registered but never dispatched to.
	// This preserves the distinction between "not configured" and
	// "configured but intentionally off".
	Enabled bool `yaml:"enabled"`
}

// Validate checks that the descriptor is well formed.
func (d ToolServerDescriptor) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyServerName
	}
	if !d.Capability.IsValid() {
		return ErrInvalidCapability
	}
	if len(d.Command) == 0 && d.Endpoint == "" {
		return ErrMissingLaunchSpec
	}
	if len(d.Command) > 0 && d.Endpoint != "" {
		return ErrAmbiguousLaunchSpec
	}
	return nil
}

// HealthStatus is the latest liveness observation for one tool server.
// It is mutated only by the registry's health-check operations and is
// never persisted across process restarts.
type HealthStatus struct {
	// Server is the descriptor name this status belongs to
	Server string

	// Reachable indicates the last probe succeeded
	Reachable bool

	// LastChecked is the probe timestamp
	LastChecked time.Time

	// Detail carries probe output (tool names) or the failure reason
	Detail string
}
