package dict

import "log/slog"

const defaultName = "dict"

// Event describes one completed container operation. Err is nil on success.
type Event struct {
	Name string
	Op   Op
	Size int
	Err  error
}

// Observer receives an Event after every observable operation. Observers are
// called synchronously on the caller's goroutine and must not block.
type Observer interface {
	Observe(event Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event Event)

// Observe calls f(event).
func (f ObserverFunc) Observe(event Event) {
	f(event)
}

// Option configures a container at construction time.
type Option func(*options)

type options struct {
	name     string
	sink     *error
	strict   bool
	logger   *slog.Logger
	observer Observer
}

func newOptions(opts []Option) options {
	o := options{name: defaultName}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithName sets the name used for this container in logs and observer events.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithErrorSink wires a caller-owned error location. Every failure is written
// into *sink in addition to being returned. The container never reads the
// sink and never releases it.
func WithErrorSink(sink *error) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithStrictErrors makes a failure fatal when no error sink is configured:
// the operation panics with the error instead of returning it. Containers
// with a sink behave as if this option were absent.
func WithStrictErrors() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLogger logs every failure at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer notified after every operation.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
