package waterfall

import "errors"

var (
	// ErrInvalidInput is returned for any out of range input. It is never
	// clamped: callers must fix the input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentOwnership is returned when the preferred and common
	// ownership fractions do not add up to 1 within OwnershipTolerance.
	ErrInconsistentOwnership = errors.New("inconsistent ownership")

	// ErrCurrencyMismatch is returned when monetary inputs use different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrUnknownPreset is returned when a scenario or round is not in the presets.
	ErrUnknownPreset = errors.New("unknown preset")
)
