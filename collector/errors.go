package collector

import "errors"

// Sentinel errors for external tool invocation. Call sites match with
// errors.Is and fall back to a default/empty result; none of these are
// allowed to take down the interface.
var (
	// ErrToolNotFound means the external binary is not on PATH.
	ErrToolNotFound = errors.New("diagnostic tool not found")

	// ErrTimeout means the invocation exceeded the configured deadline.
	ErrTimeout = errors.New("diagnostic tool timed out")

	// ErrParse means the tool ran but produced no parseable output.
	ErrParse = errors.New("diagnostic tool output not parseable")
)
