package config

import "errors"

var (
	// ErrUnknownFormat indicates a config file extension with no decoder.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrUnknownParam indicates a parameter name outside the tunable set.
	ErrUnknownParam = errors.New("config: unknown parameter")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("config: unknown preset")

	// ErrBadColor indicates a color that is not in #rrggbb form.
	ErrBadColor = errors.New("config: color must be #rrggbb")
)
