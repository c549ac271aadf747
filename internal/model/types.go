// Package model defines the domain types for the dockhand CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities are transient representations built from container-runtime
// output at invocation time — there is no persistent state.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model

import "fmt"

// ContainerRef identifies a target container by either a raw container id
// or a human-readable name. It is immutable once constructed: created per
// CLI invocation and dropped after its log pump exits.
type ContainerRef struct {
	// Value is the raw identifier as supplied by the caller.
	Value string

	// IsID indicates that Value is a container id rather than a name.
	// Ids are resolved to display names before log streaming; names are
	// used verbatim.
	IsID bool
}

// RefByID constructs a ContainerRef for a raw container id.
func RefByID(id string) ContainerRef {
	return ContainerRef{Value: id, IsID: true}
}

// RefByName constructs a ContainerRef for a container name.
func RefByName(name string) ContainerRef {
	return ContainerRef{Value: name, IsID: false}
}

// InspectInfo is the parsed form of the single-call inspect record:
// name, status, restart policy, health, uptime (derived from the RFC3339
// start time) and exposed ports.
type InspectInfo struct {
	Name          string
	Status        string
	RestartPolicy string
	Health        string
	Uptime        string
	Ports         string
}

// StatsInfo is the parsed form of a stats record: container name plus
// CPU and memory figures, kept as the runtime's own display strings.
type StatsInfo struct {
	Name   string
	CPU    string
	Memory string
}

// ExitCode represents the process exit codes used by the CLI.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitDockerNotRunning indicates the container runtime daemon is not
	// accessible.
	ExitDockerNotRunning ExitCode = 2

	// ExitContainerNotFound indicates a named container does not exist.
	ExitContainerNotFound ExitCode = 3

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
