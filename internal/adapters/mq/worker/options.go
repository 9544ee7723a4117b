package worker

import (
	"github.com/okian/circle/pkg/logger"
)

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithResultFunc registers a callback for finished gestures.
func WithResultFunc(fn ResultFunc) Option {
	return func(w *Worker) {
		w.onResult = fn
	}
}
