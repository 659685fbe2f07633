// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the analysis backend API.
package backend

// Status is the backend connection status shown in the UI.
type Status int

const (
	// StatusChecking means a health probe is in flight and nothing is known yet.
	StatusChecking Status = iota
	// StatusConnected means the last health probe returned a 2xx response.
	StatusConnected
	// StatusDisconnected means the last probe got no response at all.
	StatusDisconnected
	// StatusError means the backend answered with a non-2xx status.
	StatusError
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Label returns the status text shown in the status bar.
func (s Status) Label() string {
	switch s {
	case StatusChecking:
		return "Checking..."
	case StatusConnected:
		return "Connected"
	case StatusDisconnected:
		return "Disconnected"
	case StatusError:
		return "Backend Error"
	default:
		return "Unknown"
	}
}

// HealthReport is the outcome of one health probe.
type HealthReport struct {
	Status Status
	Models []string // Model names advertised by the backend, when decodable
	Detail string   // Error detail for the status line, empty when connected
}
