// Package fault holds the error kinds shared by every nucprop package.
//
// Errors returned by constructors and samplers wrap one of the sentinels
// below, so callers can sort them with errors.Is.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for unknown selectors and for components
	// used before they were configured.
	ErrConfiguration = errors.New("nucprop: configuration error")
	// ErrDataFile is returned when an input file is missing or unreadable.
	ErrDataFile = errors.New("nucprop: data file error")
	// ErrDataValidation is returned when table contents break an invariant.
	ErrDataValidation = errors.New("nucprop: data validation error")
	// ErrExhausted is returned when a bounded rejection sampler gives up. It
	// is the only non-fatal kind: the caller treats it as "no interaction".
	ErrExhausted = errors.New("nucprop: sampling attempts exhausted")
	// ErrInternal marks a logic defect, such as a piecewise function
	// evaluated outside of its domain.
	ErrInternal = errors.New("nucprop: internal consistency fault")
)

// Configuration wraps ErrConfiguration with a formatted message.
func Configuration(format string, args ...interface{}) error {
	return wrap(ErrConfiguration, format, args...)
}

// DataFile wraps ErrDataFile with a formatted message.
func DataFile(format string, args ...interface{}) error {
	return wrap(ErrDataFile, format, args...)
}

// DataValidation wraps ErrDataValidation with a formatted message.
func DataValidation(format string, args ...interface{}) error {
	return wrap(ErrDataValidation, format, args...)
}

// Exhausted wraps ErrExhausted with a formatted message.
func Exhausted(format string, args ...interface{}) error {
	return wrap(ErrExhausted, format, args...)
}

// Internal panics with an error wrapping ErrInternal. There is no recovery
// from an internal fault.
func Internal(format string, args ...interface{}) {
	panic(wrap(ErrInternal, format, args...))
}

// IsFatal returns true if err must abort the run. A nil error is not fatal.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrExhausted)
}

func wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
