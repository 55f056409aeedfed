package policy

import "errors"

// Policy and preset errors. Callers match them with errors.Is.
var (
	// ErrInvalidSelector is returned when a CSS selector does not compile.
	ErrInvalidSelector = errors.New("invalid CSS selector")

	// ErrInvalidXPath is returned when an XPath expression does not compile.
	ErrInvalidXPath = errors.New("invalid XPath expression")

	// ErrPresetFileNotFound is returned when a preset file does not exist.
	ErrPresetFileNotFound = errors.New("preset file not found")

	// ErrEmptyPresetName is returned when a preset file defines a preset
	// under an empty key.
	ErrEmptyPresetName = errors.New("preset name must not be empty")
)
