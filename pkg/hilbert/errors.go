package hilbert

import "errors"

// Sentinel causes attached to MALFORMED_INPUT errors returned by this package.
var (
	// ErrTooManyStates is returned by NewIndex when the product of the local
	// dimensions exceeds MaxStates.
	ErrTooManyStates = errors.New("too many states")

	// ErrIndexOutOfRange is returned by NumberToState for an index outside
	// [0, NStates).
	ErrIndexOutOfRange = errors.New("state index out of range")

	// ErrUnknownLocalState is returned when a configuration holds a value that
	// is not in its site's allowed set.
	ErrUnknownLocalState = errors.New("unknown local state")

	// ErrConfigLength is returned when a configuration does not have exactly
	// one value per site.
	ErrConfigLength = errors.New("configuration length mismatch")

	// ErrInvalidLocalStates is returned for an empty local-state list, a list
	// with repeated values, or non-finite values.
	ErrInvalidLocalStates = errors.New("invalid local states")

	// ErrInvalidSpin is returned when s is not a positive integer or
	// half-integer.
	ErrInvalidSpin = errors.New("invalid spin")

	// ErrInfeasibleConstraint is returned when a total-Sz or total-boson
	// constraint cannot be met by any configuration.
	ErrInfeasibleConstraint = errors.New("infeasible constraint")

	// ErrInvalidSite is returned by UpdateConf for a site outside [0, Size).
	ErrInvalidSite = errors.New("invalid site index")
)
