// Package errs holds the error taxonomy shared by the path pipeline.
//
// Every failure surfaces immediately to the caller wrapped around one of
// these sentinels, so callers branch with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidArgument reports a configuration value outside its domain:
	// zero point count, negative radius, negative duration, empty name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain reports a camera placed exactly on the orbit center, where
	// no facing direction exists.
	ErrDomain = errors.New("orientation undefined")

	// ErrEncoding reports a non-finite number that would reach the JSON output.
	ErrEncoding = errors.New("encoding error")

	// ErrConfigurationExhausted reports more trailing rows requested than the
	// path has rows to duplicate.
	ErrConfigurationExhausted = errors.New("not enough rows to duplicate")
)
