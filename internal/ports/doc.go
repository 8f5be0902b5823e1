// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by the TUI.
// Client ports are implemented by outbound adapters and called by the application layer.
// The session store port is implemented by the platform layer and shared by both.
package ports
