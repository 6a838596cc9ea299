package config

import "errors"

var (
	ErrParsingConfig = errors.New("config: parse environment")
	ErrNilPointer    = errors.New("config: nil target")
)
