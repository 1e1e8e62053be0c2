package modem

import "errors"

var (
	// ErrInvalidInput reports bits outside {0,1}, an empty bit sequence or
	// an unusable parameter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSignalDetected reports that no sample rose above the detection
	// threshold, so there is nothing to decode.
	ErrNoSignalDetected = errors.New("no signal detected")

	// ErrMalformedFrame reports a detected segment that cannot be split
	// into a preamble and at least one payload symbol under the framing
	// policy in use.
	ErrMalformedFrame = errors.New("malformed frame")
)
