package engine

import "log/slog"

type options struct {
	logger    *slog.Logger
	observers []Observer
}

// Option configures a Database when it is created or connected
type Option func(*options)

// WithLogger sets the logger used for lifecycle messages. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer before tables are loaded,
// so it also sees the load-time events
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, observer)
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}
