package cli

import "fmt"

// ConfigError reports a configuration problem discovered before the
// gateway starts serving. Field names the offending config field when one
// is known.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

// NewConfigError creates a ConfigError. Field may be empty when the
// problem is not tied to a single field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// ServerError wraps a failure from the serving lifecycle with the stage
// it occurred in (watcher setup, serve loop, shutdown).
type ServerError struct {
	Stage string
	Err   error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("gateway %s failed: %v", e.Stage, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// NewServerError creates a ServerError for the given lifecycle stage.
func NewServerError(stage string, err error) *ServerError {
	return &ServerError{
		Stage: stage,
		Err:   err,
	}
}
