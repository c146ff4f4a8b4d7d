package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMalformedAmount    = errors.New("malformed amount")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
