package eventwrap

import "github.com/rs/zerolog"

type (
	options struct {
		logger       logger
		maxListeners int
	}

	// Option customizes an EventEmitter or a Proxy.
	Option func(*options)
)

// WithLogger sets the logger. Defaults to a disabled zerolog logger.
func WithLogger(l logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxListeners sets how many listeners an event may hold before the emitter warns
// about a possible leak. Zero disables the check. Proxies ignore it.
func WithMaxListeners(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxListeners = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:       NewZerologLogger(zerolog.Nop()),
		maxListeners: DefaultMaxListeners,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
