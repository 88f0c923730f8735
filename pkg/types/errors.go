package types

import "errors"

var (
	// ErrOutOfRange is returned when a value is outside its valid range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidFormat is returned when a text form cannot be parsed.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidOrder is returned when a range is not ordered as required,
	// e.g. a time range that ends before it starts.
	ErrInvalidOrder = errors.New("invalid order")
)
