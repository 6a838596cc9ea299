package pricefeed

import "errors"

var (
	ErrUnexpectedStatus = errors.New("pricefeed: unexpected response status")
	ErrDecodeResponse   = errors.New("pricefeed: failed to decode response")
	ErrFieldMissing     = errors.New("pricefeed: price field missing")
	ErrFieldNotNumeric  = errors.New("pricefeed: price field is not numeric")
	ErrInvalidPrice     = errors.New("pricefeed: price must be positive")
	ErrInvalidFallback  = errors.New("pricefeed: invalid fallback price")
	ErrInvalidProvider  = errors.New("pricefeed: invalid provider definition")
	ErrLoadProviders    = errors.New("pricefeed: failed to load providers file")
)
