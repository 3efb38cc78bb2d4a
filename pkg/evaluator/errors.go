package evaluator

import "errors"

var (
	// ErrEmptyInput: no readings to average.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidInput: a value outside the metric's domain (NaN, Inf, negative).
	ErrInvalidInput = errors.New("invalid input")
)
