// Package component defines the lifecycle interface for resources pontos
// acquires for the duration of a command: the GitHub API session and the
// telemetry exporters.
//
// A Registry starts components in registration order and stops the started
// ones in reverse order, so a command can acquire everything it needs up
// front and release it deterministically.
package component
