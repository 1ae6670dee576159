package measure

import "errors"

// Error kinds for measurement failures. Callers add context with
// fmt.Errorf("...: %w", kind) and dispatch on the kind with errors.Is.
var (
	// ErrNotRegistered is returned when an algorithm or factory name has no
	// registry entry.
	ErrNotRegistered = errors.New("name not registered")

	// ErrBadConfig is returned when construction parameters can never
	// produce a working algorithm.
	ErrBadConfig = errors.New("invalid configuration")

	// ErrUnsupported is returned when a factory is asked for a construction
	// protocol it does not implement.
	ErrUnsupported = errors.New("operation not supported")

	// ErrComputation is returned when the input data admits no result, such
	// as a window with zero net counts.
	ErrComputation = errors.New("computation failed")

	// ErrPrecondition is returned when required state is missing or the
	// geometry is unusable, such as a window falling off the image.
	ErrPrecondition = errors.New("precondition not met")
)

// Kind labels an error with its taxonomy name, for metrics and logs.
// Unrecognized errors are labeled "error"; nil is labeled "ok".
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, ErrBadConfig):
		return "bad_config"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrComputation):
		return "computation"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	default:
		return "error"
	}
}
