package config

import "errors"

var (
	// ErrParsingConfig indicates environment variables could not be parsed
	// into the target struct.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrNilPointer indicates a nil target was passed to Load.
	ErrNilPointer = errors.New("config.nil_pointer")
)
