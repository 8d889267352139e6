// Package override turns resolved option values into the pipeline override
// document the automation engine consumes. Everything here is a pure
// transform over catalog data and a caller-supplied value snapshot; dropped
// fragments surface only as logger diagnostics, never as errors.
package override

// Logger records diagnostics for contributions that had to be dropped. It
// matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
