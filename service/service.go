// Package service sequences the long-lived host subsystems.
//
// Lifecycle:
//  1. Construction by the host
//  2. Init(args...) with host-resolved settings, dependencies first
//  3. Start() once every service has initialized
//  4. Stop() in reverse start order
package service

// Service is a host subsystem with a managed lifecycle: audio, clock, stream
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start first
	Dependencies() []string

	// Init configures the service from service-specific args
	Init(args ...any) error

	// Start begins operation, launching goroutines if any
	Start() error

	// Stop halts operation and releases resources; must be idempotent
	Stop() error
}
