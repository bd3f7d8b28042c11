package engine

import "errors"

var (
	// ErrValidation marks a rule that cannot be registered.
	ErrValidation = errors.New("rule validation failed")
	// ErrDuplicateRule is returned when a rule id is already registered.
	ErrDuplicateRule = errors.New("rule already registered")
	// ErrInvalidValue marks a sensor reading that cannot be evaluated.
	ErrInvalidValue = errors.New("invalid sensor value")
	// ErrSinkTrigger wraps a persistence failure while recording a trigger.
	ErrSinkTrigger = errors.New("record alarm trigger")
	// ErrSinkClear wraps a persistence failure while recording a clear.
	ErrSinkClear = errors.New("record alarm clear")
)
