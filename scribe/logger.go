package scribe

// Logger receives diagnostics from Wrap and the recorders: properties left
// unwrapped, frozen inputs returned as is and calls that failed.
//
// Contract:
// - Concurrency: Logf may be called from every goroutine that calls a
// wrapped method.
// - Recording: for a failed call Logf runs after the duration was measured,
// before the error is returned to the caller.
type Logger interface {
	Logf(format string, args ...any)
}
