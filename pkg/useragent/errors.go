package useragent

import "errors"

var (
	ErrEmptyUserAgent     = errors.New("useragent: empty string")
	ErrMalformedUserAgent = errors.New("useragent: no recognizable product token")
)
