// Package should provides cleanup helpers that are expected to succeed but
// may fail in practice. Failures are logged instead of returned, which keeps
// them usable in defer statements.
package should

import (
	"io"
	"log/slog"
)

// Freer is implemented by resources released through Free, such as
// *dict.Dict.
type Freer interface {
	Free() error
}

// Free releases f and logs msg at warn level if that fails.
//
// Example:
//
//	d := dict.New[string, int]()
//	defer should.Free(d, "failed to free container")
func Free(f Freer, msg string) {
	if err := f.Free(); err != nil {
		slog.Warn(msg, "error", err)
	}
}

// Close closes closer and logs msg at error level if that fails.
func Close(closer io.Closer, msg string) {
	if err := closer.Close(); err != nil {
		slog.Error(msg, "error", err)
	}
}
