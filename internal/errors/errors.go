// Package errors provides standardized error handling for brightd.
// It defines the error kinds raised by brightness providers and configuration
// loading, plus helpers for consistent creation, wrapping and inspection.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Brightness error kinds
	BrightnessQueryFailed
	BrightnessSetFailed
	MonitorEnumerationFailed
	MonitorNotFound
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	// Preset error kinds
	PresetNotFound
)

// String returns a short name for the kind, used in log fields.
func (k ErrorKind) String() string {
	switch k {
	case BrightnessQueryFailed:
		return "brightness_query_failed"
	case BrightnessSetFailed:
		return "brightness_set_failed"
	case MonitorEnumerationFailed:
		return "monitor_enumeration_failed"
	case MonitorNotFound:
		return "monitor_not_found"
	case InvalidConfig:
		return "invalid_config"
	case ConfigNotFound:
		return "config_not_found"
	case PresetNotFound:
		return "preset_not_found"
	default:
		return "unknown"
	}
}

// Common error constants for frequently occurring errors
var (
	ErrMonitorNotFound = NewBrightnessError("monitor not found", -1, MonitorNotFound, nil)
	ErrInvalidConfig   = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrPresetNotFound  = &ApplicationError{msg: "preset not found", kind: PresetNotFound}
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// Is matches any ApplicationError-based target of the same kind, so
// errors.Is(err, ErrMonitorNotFound) works for errors built with a
// different message or monitor.
func (e *ApplicationError) Is(target error) bool {
	var kinded interface{ Kind() ErrorKind }
	if !errors.As(target, &kinded) {
		return false
	}
	return kinded.Kind() != Unknown && kinded.Kind() == e.kind
}

// BrightnessError represents a failure talking to a brightness provider
type BrightnessError struct {
	ApplicationError
	monitor int
}

// NewBrightnessError creates a new brightness error for the monitor index.
// A negative index means the error is not tied to a single monitor.
func NewBrightnessError(msg string, monitor int, kind ErrorKind, err error) *BrightnessError {
	return &BrightnessError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		monitor: monitor,
	}
}

// Error returns the brightness error message
func (e *BrightnessError) Error() string {
	if e.monitor >= 0 {
		if e.err != nil {
			return fmt.Sprintf("%s: monitor %d: %v", e.msg, e.monitor, e.err)
		}
		return fmt.Sprintf("%s: monitor %d", e.msg, e.monitor)
	}
	return e.ApplicationError.Error()
}

// Monitor returns the monitor index associated with the error
func (e *BrightnessError) Monitor() int {
	return e.monitor
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// NewPresetError reports an unknown preset name
func NewPresetError(name string) error {
	return &ApplicationError{
		msg:  fmt.Sprintf("preset not found: %q", name),
		kind: PresetNotFound,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind of the first application error in err's chain,
// or Unknown.
func KindOf(err error) ErrorKind {
	var kinded interface{ Kind() ErrorKind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return Unknown
}

// IsBrightnessSetFailed checks if the error is a failed brightness write
func IsBrightnessSetFailed(err error) bool {
	var bErr *BrightnessError
	if errors.As(err, &bErr) {
		return bErr.Kind() == BrightnessSetFailed
	}
	return false
}

// IsBrightnessQueryFailed checks if the error is a failed brightness read
func IsBrightnessQueryFailed(err error) bool {
	var bErr *BrightnessError
	if errors.As(err, &bErr) {
		return bErr.Kind() == BrightnessQueryFailed
	}
	return false
}

// IsMonitorNotFound checks if the error refers to an unknown monitor
func IsMonitorNotFound(err error) bool {
	var bErr *BrightnessError
	if errors.As(err, &bErr) {
		return bErr.Kind() == MonitorNotFound
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsPresetNotFound checks if the error is an unknown preset error
func IsPresetNotFound(err error) bool {
	return KindOf(err) == PresetNotFound
}
